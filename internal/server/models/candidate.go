package models

// Candidate is one application (job_candidates row) joined with the
// applicant's details.
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

// CVLink is the body of GET /Candidate/cv/{fileName}.
type CVLink struct {
	URL string `json:"url"`
}
