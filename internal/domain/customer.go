package domain

import (
	"strings"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/utils"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	switch CustomerStatus(s) {
	case CustomerActive, CustomerInactive:
		return CustomerStatus(s), true
	default:
		return "", false
	}
}

// Customer is a CRM record, created manually by an operator or converted
// from an inquiry.
type Customer struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Notes     string         `json:"notes"`
	Source    string         `json:"source"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CustomerUpsert carries the operator-editable fields.
type CustomerUpsert struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Phone  string         `json:"phone"`
	Notes  string         `json:"notes"`
	Source string         `json:"source"`
	Status CustomerStatus `json:"status"`
}

func (r *CustomerUpsert) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = utils.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Status == "" {
		r.Status = CustomerActive
	}
}

func (r *CustomerUpsert) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Name == "" {
		errs["name"] = "name is required"
	}
	if r.Email != "" && !utils.IsValidEmail(r.Email) {
		errs["email"] = "email address is not valid"
	}
	if _, ok := ParseCustomerStatus(string(r.Status)); !ok {
		errs["status"] = "status must be active or inactive"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
