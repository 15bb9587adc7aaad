package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pipeline stages a lead moves through.
const (
	StageNew         = "New"
	StageContacted   = "Contacted"
	StageQualified   = "Qualified"
	StageNegotiation = "Negotiation"
	StageConverted   = "Converted"
)

// Acquisition channels.
const (
	SourceWebsite     = "Website"
	SourceEmail       = "Email"
	SourcePhone       = "Phone"
	SourceReferral    = "Referral"
	SourceEvent       = "Event"
	SourceSocialMedia = "Social Media"
)

// Stages lists the pipeline stages in funnel order.
var Stages = []string{StageNew, StageContacted, StageQualified, StageNegotiation, StageConverted}

// Sources lists the accepted acquisition channels.
var Sources = []string{SourceWebsite, SourceEmail, SourcePhone, SourceReferral, SourceEvent, SourceSocialMedia}

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrEmailAlreadyExists = errors.New("lead with this email already exists")
)

type Lead struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Stage     string    `json:"stage"`
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLead builds a lead with a generated ID and defaulted stage/source.
func NewLead(firstName, lastName, email, phone, company, stage string, value float64, source, notes string) *Lead {
	now := time.Now()

	if stage == "" {
		stage = StageNew
	}
	if source == "" {
		source = SourceWebsite
	}

	return &Lead{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Stage:     stage,
		Value:     value,
		Source:    source,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidStage reports whether s is one of the five pipeline stages.
func IsValidStage(s string) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsValidSource reports whether s is one of the accepted channels.
func IsValidSource(s string) bool {
	for _, source := range Sources {
		if s == source {
			return true
		}
	}
	return false
}

// LeadFilter narrows a listing. Zero values mean "no filter".
type LeadFilter struct {
	Search string
	Stage  string
	Source string
}

// LeadSort orders a listing.
type LeadSort struct {
	Field      string
	Descending bool
}

// LeadPage is a 1-based pagination window.
type LeadPage struct {
	Number int
	Limit  int
}

// StageCounts holds the per-stage totals for the fixed five stages.
type StageCounts struct {
	Total       int64 `json:"total"`
	New         int64 `json:"new"`
	Contacted   int64 `json:"contacted"`
	Qualified   int64 `json:"qualified"`
	Negotiation int64 `json:"negotiation"`
	Converted   int64 `json:"converted"`
}

// GroupCount is one bucket of a stage/source distribution. The key field keeps
// the `_id` name the dashboard already reads.
type GroupCount struct {
	Key   string `json:"_id"`
	Count int64  `json:"count"`
}

// GroupRevenue is one bucket of a revenue rollup.
type GroupRevenue struct {
	Key   string  `json:"_id"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
	Avg   float64 `json:"avg"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LeadFilter, sort LeadSort, page LeadPage) ([]*Lead, int64, error)
	CountByStage(ctx context.Context) (*StageCounts, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountValueAtLeast(ctx context.Context, value float64) (int64, error)
	SumValue(ctx context.Context) (float64, error)
	GroupCountBy(ctx context.Context, field string) ([]GroupCount, error)
	GroupRevenueBy(ctx context.Context, field string) ([]GroupRevenue, error)
	TopByValue(ctx context.Context, limit int) ([]*Lead, error)
}
