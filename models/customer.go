package models

import "time"

// Customer is the loyalty profile backing a User with role customer
type Customer struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Name             string    `json:"name"`
	Surname1         string    `json:"surname1,omitempty"`
	Surname2         string    `json:"surname2,omitempty"`
	NationalID       string    `json:"national_id,omitempty"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	LoyaltyPoints    int       `json:"loyalty_points"`
	RegistrationDate time.Time `json:"registration_date"`
	UniqueCode       string    `json:"unique_code"` // 8 chars, [A-Z0-9]
}

// FullName joins the name and any surnames
func (c Customer) FullName() string {
	name := c.Name
	if c.Surname1 != "" {
		name += " " + c.Surname1
	}
	if c.Surname2 != "" {
		name += " " + c.Surname2
	}
	return name
}
