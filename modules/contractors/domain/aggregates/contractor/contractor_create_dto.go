package contractor

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/facilops/facilops/pkg/constants"
)

type CreateDTO struct {
	Name         string `json:"name" validate:"required"`
	ServiceType  string `json:"service_type" validate:"required"`
	Status       string `json:"status" validate:"omitempty"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
	Credentials  string `json:"credentials"`
	Rating       int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.ServiceType = strings.TrimSpace(d.ServiceType)
	d.Status = strings.TrimSpace(d.Status)
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)
	d.ContactPhone = strings.TrimSpace(d.ContactPhone)
	d.Location = strings.TrimSpace(d.Location)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Credentials = strings.TrimSpace(d.Credentials)
}

// Ok validates the DTO and returns per-field messages keyed by struct
// field name.
func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	out := map[string]string{}
	if d.Status != "" {
		if _, ok := ParseStatus(d.Status); !ok {
			out["Status"] = fmt.Sprintf("Invalid status '%s'", d.Status)
		}
	}

	if errs := constants.Validate.Struct(d); errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			switch err.Tag() {
			case "required":
				out[err.Field()] = fmt.Sprintf("%s is required", err.Field())
			default:
				out[err.Field()] = fmt.Sprintf("%s is invalid", err.Field())
			}
		}
	}
	return out, len(out) == 0
}

// ToEntity builds the aggregate, applying the Active default when status
// is omitted.
func (d *CreateDTO) ToEntity(createdBy uuid.UUID) Contractor {
	entity := New(d.Name, d.ServiceType, createdBy).
		WithContact(d.ContactEmail, d.ContactPhone).
		WithLocation(d.Location).
		WithNotes(d.Notes).
		WithCredentials(d.Credentials).
		WithRating(d.Rating)
	if status, ok := ParseStatus(d.Status); ok {
		entity = entity.WithStatus(status)
	}
	return entity
}
