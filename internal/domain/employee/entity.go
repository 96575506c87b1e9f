package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeHourly PaymentType = "Hourly"
	PaymentTypeGlobal PaymentType = "Global"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Employee is the slice of the workforce record payroll needs. The full
// employee profile lives outside this service.
type Employee struct {
	ID           string
	CompanyID    string
	FirstName    string
	LastName     string
	Email        string
	CountryCode  string
	PaymentType  PaymentType
	HourlySalary *decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
