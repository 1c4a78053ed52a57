package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxJobTitleLen    = 50
	MaxDescriptionLen = 256
)

type Opening struct {
	OpeningID   int       `json:"openingID"`
	JobTitle    string    `json:"jobTitle"`
	Description *string   `json:"description"`
	OpenFlag    bool      `json:"openFlag"`
	DateCreated time.Time `json:"dateCreated"`
}

// OpeningInput is the body of POST /Opening.
type OpeningInput struct {
	JobTitle    string  `json:"jobTitle"`
	Description *string `json:"description"`
}

func (in *OpeningInput) Normalize() {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Description = blankToNil(in.Description)
}

func (in OpeningInput) Validate() error {
	if err := validateJobTitle(in.JobTitle); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

// OpeningPatch is the body of PATCH /Opening/{id}. Absent fields are kept;
// an empty description clears it.
type OpeningPatch struct {
	JobTitle    *string `json:"jobTitle"`
	Description *string `json:"description"`
	OpenFlag    *bool   `json:"openFlag"`
}

func (p OpeningPatch) Empty() bool {
	return p.JobTitle == nil && p.Description == nil && p.OpenFlag == nil
}

func (p *OpeningPatch) Normalize() {
	if p.JobTitle != nil {
		t := strings.TrimSpace(*p.JobTitle)
		p.JobTitle = &t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
}

func (p OpeningPatch) Validate() error {
	if p.Empty() {
		return validationError("nothing to update")
	}
	if p.JobTitle != nil {
		if err := validateJobTitle(*p.JobTitle); err != nil {
			return err
		}
	}
	return validateDescription(p.Description)
}

// Apply merges the patch into o.
func (p OpeningPatch) Apply(o *Opening) {
	if p.JobTitle != nil {
		o.JobTitle = *p.JobTitle
	}
	if p.Description != nil {
		o.Description = blankToNil(p.Description)
	}
	if p.OpenFlag != nil {
		o.OpenFlag = *p.OpenFlag
	}
}

func validateJobTitle(t string) error {
	if t == "" {
		return validationError("jobTitle is required")
	}
	if len([]rune(t)) > MaxJobTitleLen {
		return validationError(fmt.Sprintf("jobTitle must have at most %d characters", MaxJobTitleLen))
	}
	return nil
}

func validateDescription(d *string) error {
	if d != nil && len([]rune(*d)) > MaxDescriptionLen {
		return validationError(fmt.Sprintf("description must have at most %d characters", MaxDescriptionLen))
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
