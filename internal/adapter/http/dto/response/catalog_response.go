package response

import "github.com/seha3/repair-orders/internal/domain/entities"

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type VehicleResponse struct {
	ID         string `json:"id"`
	Plate      string `json:"plate"`
	Model      string `json:"model"`
	CustomerID string `json:"customer_id"`
}

func FromCustomers(customers []entities.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	return out
}

func FromVehicles(vehicles []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleResponse{ID: v.ID, Plate: v.Plate, Model: v.Model, CustomerID: v.CustomerID})
	}
	return out
}
