package request

// ServiceCreateRequest adds a service line to an order. Name falls back to a
// default downstream when blank.
type ServiceCreateRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	LaborEstimated float64 `json:"labor_estimated"`
}

// ServicePatchRequest partially updates a service line; absent fields keep
// their prior value.
type ServicePatchRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	LaborEstimated *float64 `json:"labor_estimated"`
}

// ComponentCreateRequest adds a component to a service line.
type ComponentCreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Estimated   float64 `json:"estimated"`
}

// ComponentPatchRequest partially updates a component; absent fields keep
// their prior value.
type ComponentPatchRequest struct {
	Name      *string  `json:"name"`
	Estimated *float64 `json:"estimated"`
}

// RealCostRequest captures a real labor or part cost during the repair.
type RealCostRequest struct {
	Value *float64 `json:"value" binding:"required"`
}
