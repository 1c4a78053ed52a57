package models

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the wire and column format of employee and candidate dates.
const DateLayout = "2006-01-02"

var (
	maritalStatuses = []string{"S", "M"}
	genders         = []string{"M", "F"}
)

type Employee struct {
	BusinessEntityID int    `json:"businessEntityID"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	NationalIDNumber string `json:"nationalIDNumber"`
	JobTitle         string `json:"jobTitle"`
	BirthDate        string `json:"birthDate"`
	MaritalStatus    string `json:"maritalStatus"`
	Gender           string `json:"gender"`
	HireDate         string `json:"hireDate"`
}

func (e *Employee) Normalize() {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.NationalIDNumber = strings.TrimSpace(e.NationalIDNumber)
	e.JobTitle = strings.TrimSpace(e.JobTitle)
	e.MaritalStatus = strings.ToUpper(strings.TrimSpace(e.MaritalStatus))
	e.Gender = strings.ToUpper(strings.TrimSpace(e.Gender))
}

func (e Employee) Validate() error {
	switch {
	case e.NationalIDNumber == "":
		return validationError("nationalIDNumber is required")
	case e.JobTitle == "":
		return validationError("jobTitle is required")
	case !validDate(e.BirthDate):
		return validationError("birthDate must be YYYY-MM-DD")
	case !validDate(e.HireDate):
		return validationError("hireDate must be YYYY-MM-DD")
	case !slices.Contains(maritalStatuses, e.MaritalStatus):
		return validationError("maritalStatus must be S or M")
	case !slices.Contains(genders, e.Gender):
		return validationError("gender must be M or F")
	}
	return nil
}

// EmployeePatch is the body of PATCH /Employee/{id}.
type EmployeePatch struct {
	JobTitle      *string `json:"jobTitle"`
	MaritalStatus *string `json:"maritalStatus"`
	Gender        *string `json:"gender"`
}

func (p *EmployeePatch) Normalize() {
	if p.JobTitle != nil {
		v := strings.TrimSpace(*p.JobTitle)
		p.JobTitle = &v
	}
	if p.MaritalStatus != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.MaritalStatus))
		p.MaritalStatus = &v
	}
	if p.Gender != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.Gender))
		p.Gender = &v
	}
}

func (p EmployeePatch) Validate() error {
	if p.JobTitle == nil && p.MaritalStatus == nil && p.Gender == nil {
		return validationError("nothing to update")
	}
	if p.JobTitle != nil && *p.JobTitle == "" {
		return validationError("jobTitle is required")
	}
	if p.MaritalStatus != nil && !slices.Contains(maritalStatuses, *p.MaritalStatus) {
		return validationError("maritalStatus must be S or M")
	}
	if p.Gender != nil && !slices.Contains(genders, *p.Gender) {
		return validationError("gender must be M or F")
	}
	return nil
}

func (p EmployeePatch) Apply(e *Employee) {
	if p.JobTitle != nil {
		e.JobTitle = *p.JobTitle
	}
	if p.MaritalStatus != nil {
		e.MaritalStatus = *p.MaritalStatus
	}
	if p.Gender != nil {
		e.Gender = *p.Gender
	}
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
