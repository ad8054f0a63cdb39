package entities

// Customer is a workshop customer. Orders reference customers by id; the
// catalog is reference data, not part of the order aggregate.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Vehicle is a customer's vehicle.
type Vehicle struct {
	ID         string `json:"id"`
	Plate      string `json:"plate"`
	Model      string `json:"model"`
	CustomerID string `json:"customer_id"`
}
