package models

import "time"

type Review struct {
	ID              int       `json:"id"`
	CustomerID      int       `json:"customer_id"`
	Rating          int       `json:"rating"` // 1..5
	Comment         string    `json:"comment"`
	Timestamp       time.Time `json:"timestamp"`
	Verified        bool      `json:"verified"`
	ReviewedProduct string    `json:"reviewed_product,omitempty"`
}
