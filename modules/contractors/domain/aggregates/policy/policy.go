package policy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status accepts exactly the stored spellings. Unlike contractor status
// there is no case folding here.
type Status string

const (
	StatusValid    Status = "Valid"
	StatusExpiring Status = "Expiring"
	StatusExpired  Status = "Expired"
)

func ParseStatus(v string) (Status, bool) {
	switch Status(v) {
	case StatusValid, StatusExpiring, StatusExpired:
		return Status(v), true
	default:
		return "", false
	}
}

// Policy is an insurance policy record keyed naturally by
// (contractorName, policyNumber).
type Policy struct {
	id             uuid.UUID
	contractorName string
	insuranceType  string
	provider       string
	policyNumber   string
	coverage       decimal.Decimal
	issueDate      time.Time
	expiryDate     time.Time
	status         Status
	createdBy      uuid.UUID
	createdAt      time.Time
}

func New(contractorName, insuranceType, provider, policyNumber string, createdBy uuid.UUID) Policy {
	return Policy{
		contractorName: strings.TrimSpace(contractorName),
		insuranceType:  strings.TrimSpace(insuranceType),
		provider:       strings.TrimSpace(provider),
		policyNumber:   strings.TrimSpace(policyNumber),
		status:         StatusValid,
		createdBy:      createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	contractorName string,
	insuranceType string,
	provider string,
	policyNumber string,
	coverage decimal.Decimal,
	issueDate time.Time,
	expiryDate time.Time,
	status Status,
	createdBy uuid.UUID,
	createdAt time.Time,
) Policy {
	return Policy{
		id:             id,
		contractorName: strings.TrimSpace(contractorName),
		insuranceType:  strings.TrimSpace(insuranceType),
		provider:       strings.TrimSpace(provider),
		policyNumber:   strings.TrimSpace(policyNumber),
		coverage:       coverage,
		issueDate:      issueDate,
		expiryDate:     expiryDate,
		status:         status,
		createdBy:      createdBy,
		createdAt:      createdAt,
	}
}

func (p Policy) WithStatus(s Status) Policy {
	p.status = s
	return p
}

func (p Policy) WithCoverage(amount decimal.Decimal) Policy {
	p.coverage = amount
	return p
}

func (p Policy) WithDates(issue, expiry time.Time) Policy {
	p.issueDate = issue
	p.expiryDate = expiry
	return p
}

func (p Policy) ID() uuid.UUID            { return p.id }
func (p Policy) ContractorName() string   { return p.contractorName }
func (p Policy) InsuranceType() string    { return p.insuranceType }
func (p Policy) Provider() string         { return p.provider }
func (p Policy) PolicyNumber() string     { return p.policyNumber }
func (p Policy) Coverage() decimal.Decimal { return p.coverage }
func (p Policy) IssueDate() time.Time     { return p.issueDate }
func (p Policy) ExpiryDate() time.Time    { return p.expiryDate }
func (p Policy) Status() Status           { return p.status }
func (p Policy) CreatedBy() uuid.UUID     { return p.createdBy }
func (p Policy) CreatedAt() time.Time     { return p.createdAt }
func (p Policy) IsZero() bool             { return p.id == uuid.Nil && p.policyNumber == "" }
