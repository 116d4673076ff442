package contractor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the stored, capitalized form. Parsing is case-insensitive;
// any casing in an import file maps to the canonical value.
type Status string

const (
	StatusActive    Status = "Active"
	StatusWarning   Status = "Warning"
	StatusSuspended Status = "Suspended"
)

func ParseStatus(v string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "active":
		return StatusActive, true
	case "warning":
		return StatusWarning, true
	case "suspended":
		return StatusSuspended, true
	default:
		return "", false
	}
}

// Contractor is keyed naturally by (name, serviceType); the id is a
// generated identifier, not part of duplicate detection.
type Contractor struct {
	id           uuid.UUID
	name         string
	serviceType  string
	status       Status
	contactEmail string
	contactPhone string
	location     string
	notes        string
	credentials  string
	rating       int
	createdBy    uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
}

func New(name, serviceType string, createdBy uuid.UUID) Contractor {
	return Contractor{
		name:        strings.TrimSpace(name),
		serviceType: strings.TrimSpace(serviceType),
		status:      StatusActive,
		createdBy:   createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	serviceType string,
	status Status,
	contactEmail string,
	contactPhone string,
	location string,
	notes string,
	credentials string,
	rating int,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Contractor {
	return Contractor{
		id:           id,
		name:         strings.TrimSpace(name),
		serviceType:  strings.TrimSpace(serviceType),
		status:       status,
		contactEmail: contactEmail,
		contactPhone: contactPhone,
		location:     location,
		notes:        notes,
		credentials:  credentials,
		rating:       rating,
		createdBy:    createdBy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (c Contractor) WithStatus(s Status) Contractor {
	c.status = s
	return c
}

func (c Contractor) WithContact(email, phone string) Contractor {
	c.contactEmail = strings.TrimSpace(email)
	c.contactPhone = strings.TrimSpace(phone)
	return c
}

func (c Contractor) WithLocation(location string) Contractor {
	c.location = strings.TrimSpace(location)
	return c
}

func (c Contractor) WithNotes(notes string) Contractor {
	c.notes = strings.TrimSpace(notes)
	return c
}

func (c Contractor) WithCredentials(credentials string) Contractor {
	c.credentials = strings.TrimSpace(credentials)
	return c
}

// WithRating sets the 1..5 rating; zero means unset.
func (c Contractor) WithRating(rating int) Contractor {
	c.rating = rating
	return c
}

func (c Contractor) ID() uuid.UUID        { return c.id }
func (c Contractor) Name() string         { return c.name }
func (c Contractor) ServiceType() string  { return c.serviceType }
func (c Contractor) Status() Status       { return c.status }
func (c Contractor) ContactEmail() string { return c.contactEmail }
func (c Contractor) ContactPhone() string { return c.contactPhone }
func (c Contractor) Location() string     { return c.location }
func (c Contractor) Notes() string        { return c.notes }
func (c Contractor) Credentials() string  { return c.credentials }
func (c Contractor) Rating() int          { return c.rating }
func (c Contractor) CreatedBy() uuid.UUID { return c.createdBy }
func (c Contractor) CreatedAt() time.Time { return c.createdAt }
func (c Contractor) UpdatedAt() time.Time { return c.updatedAt }
func (c Contractor) IsZero() bool         { return c.id == uuid.Nil && c.name == "" }
