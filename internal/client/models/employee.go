package models

import "time"

// Employee is an employee record. Dates are ISO "YYYY-MM-DD" strings, as
// served by the API.
type Employee struct {
	BusinessEntityID int    `json:"businessEntityID"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	NationalIDNumber string `json:"nationalIDNumber"`
	JobTitle         string `json:"jobTitle"`
	BirthDate        string `json:"birthDate"`
	MaritalStatus    string `json:"maritalStatus"`
	Gender           string `json:"gender"`
	HireDate         string `json:"hireDate"`
}

// EmployeePatch is the body of PATCH /Employee/{id}.
type EmployeePatch struct {
	JobTitle      *string `json:"jobTitle,omitempty"`
	MaritalStatus *string `json:"maritalStatus,omitempty"`
	Gender        *string `json:"gender,omitempty"`
}

// Candidate is one application to an opening.
type Candidate struct {
	JobCandidateID int    `json:"jobCandidateID"`
	ID             int    `json:"id"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	NationalID     string `json:"nationalID,omitempty"`
	BirthDate      string `json:"birthDate,omitempty"`
	Gender         string `json:"gender,omitempty"`
	MaritalStatus  string `json:"maritalStatus,omitempty"`
	Comment        string `json:"comment,omitempty"`
	ResumeFile     string `json:"resumeFile,omitempty"`
}

func (c Candidate) FullName() string {
	name := c.FirstName
	if c.MiddleName != "" {
		name += " " + c.MiddleName
	}
	if c.LastName != "" {
		name += " " + c.LastName
	}
	return name
}

// Tokens is the credential pair returned by login, register and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest is the body of POST /Auth/register.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	UserName         string `json:"userName,omitempty"`
	FullName         string `json:"fullName,omitempty"`
	BusinessEntityID *int   `json:"businessEntityID,omitempty"`
}

// TokenInfo is what the console can tell about the stored access token
// without verifying it.
type TokenInfo struct {
	Subject   string
	Roles     []string
	ExpiresAt *time.Time
}

func (t TokenInfo) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
