// internal/model/customer.go
package model

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("name must not be empty")

type Customer struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Age         int     `db:"age" json:"age"`
	Height      float64 `db:"height" json:"height"`
	Weight      float64 `db:"weight" json:"weight"`
	HealthGoals string  `db:"health_goals" json:"health_goals"`
}

// CustomerPayload carries every customer field except the store-assigned ID.
type CustomerPayload struct {
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	HealthGoals string  `json:"health_goals"`
}

// Validate checks the field rules every stored record must satisfy.
func (p CustomerPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// WithID builds the stored record for this payload.
func (p CustomerPayload) WithID(id int) Customer {
	return Customer{
		ID:          id,
		Name:        p.Name,
		Age:         p.Age,
		Height:      p.Height,
		Weight:      p.Weight,
		HealthGoals: p.HealthGoals,
	}
}

// CustomerDocument is the on-disk shape of the whole collection.
type CustomerDocument struct {
	Customers []Customer `json:"customers"`
}

// NewCustomerDocument returns an empty collection document.
func NewCustomerDocument() *CustomerDocument {
	return &CustomerDocument{Customers: []Customer{}}
}

// IndexOf returns the position of the customer with the given ID, or -1.
func (d *CustomerDocument) IndexOf(id int) int {
	for i, c := range d.Customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
