package model

import "time"

// ProjectType is the category a prospective client picks on the contact form.
type ProjectType string

const (
	ProjectResidential ProjectType = "residential"
	ProjectCommercial  ProjectType = "commercial"
	ProjectRenovation  ProjectType = "renovation"
	ProjectDesignBuild ProjectType = "design-build"
	ProjectEmergency   ProjectType = "emergency"
	ProjectOther       ProjectType = "other"
)

// ProjectTypes lists the accepted categories in the order the form shows them.
var ProjectTypes = []ProjectType{
	ProjectResidential,
	ProjectCommercial,
	ProjectRenovation,
	ProjectDesignBuild,
	ProjectEmergency,
	ProjectOther,
}

// ContactInput is a normalized contact form payload. Strings are trimmed
// before the validate rules run.
type ContactInput struct {
	Name        string      `json:"name" db:"name" validate:"required,max=100"`
	Email       string      `json:"email" db:"email" validate:"required,email,max=255"`
	Phone       string      `json:"phone,omitempty" db:"phone" validate:"max=32"`
	ProjectType ProjectType `json:"projectType" db:"project_type" validate:"required,oneof=residential commercial renovation design-build emergency other"`
	Budget      string      `json:"budget,omitempty" db:"budget" validate:"max=64"`
	Message     string      `json:"message" db:"message" validate:"required,min=10,max=5000"`
}

// ContactSubmission is a stored contact form entry. ID and SubmittedAt are
// assigned by the store; a submission is never changed after creation.
type ContactSubmission struct {
	ID int64 `json:"id" db:"id"`
	ContactInput
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// FieldError describes one rejected field of a submission.
// Field is empty when the request body as a whole could not be read.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Field error codes.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeInvalidMail = "invalid_email"
	CodeInvalidEnum = "invalid_enum"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeInvalidBody = "invalid_body"
)
