package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxJobTitleLen    = 50
	MaxDescriptionLen = 256
)

var (
	ErrJobTitleRequired = errors.New("job title is required")
	ErrJobTitleTooLong  = fmt.Errorf("job title must have at most %d characters", MaxJobTitleLen)
	ErrDescTooLong      = fmt.Errorf("description must have at most %d characters", MaxDescriptionLen)
)

// Opening is a job opening.
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

// NewOpeningInput trims the fields and turns an empty description into null.
func NewOpeningInput(title, description string) OpeningInput {
	in := OpeningInput{JobTitle: strings.TrimSpace(title)}
	if d := strings.TrimSpace(description); d != "" {
		in.Description = &d
	}
	return in
}

func (in OpeningInput) Validate() error {
	if in.JobTitle == "" {
		return ErrJobTitleRequired
	}
	if len([]rune(in.JobTitle)) > MaxJobTitleLen {
		return ErrJobTitleTooLong
	}
	if in.Description != nil && len([]rune(*in.Description)) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	return nil
}

// OpeningPatch is the body of PATCH /Opening/{id}. Nil fields are left unchanged.
type OpeningPatch struct {
	JobTitle    *string `json:"jobTitle,omitempty"`
	Description *string `json:"description,omitempty"`
	OpenFlag    *bool   `json:"openFlag,omitempty"`
}

func (p OpeningPatch) Empty() bool {
	return p.JobTitle == nil && p.Description == nil && p.OpenFlag == nil
}

func (p OpeningPatch) Validate() error {
	if p.JobTitle != nil {
		if strings.TrimSpace(*p.JobTitle) == "" {
			return ErrJobTitleRequired
		}
		if len([]rune(*p.JobTitle)) > MaxJobTitleLen {
			return ErrJobTitleTooLong
		}
	}
	if p.Description != nil && len([]rune(*p.Description)) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	return nil
}
