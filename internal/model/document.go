package model

import "time"

// Category is the single label the classification router assigns to a document.
type Category string

const (
	CategoryFinancial  Category = "Financial"
	CategoryAuction    Category = "Auction"
	CategoryCompliance Category = "Compliance"
	CategoryHR         Category = "HR"
	CategoryOther      Category = "Other"
)

// Categories lists every valid category in router priority order.
var Categories = []Category{CategoryFinancial, CategoryAuction, CategoryCompliance, CategoryHR, CategoryOther}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Urgency is the triage level shown on a stored document.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyReview   Urgency = "Review"
	UrgencyInfo     Urgency = "Info"
)

// Rank orders urgencies for sorting: Critical > Review > Info.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyReview:
		return 2
	case UrgencyInfo:
		return 1
	default:
		return 0
	}
}

// Valid reports whether u is one of the enumerated urgencies.
func (u Urgency) Valid() bool {
	return u.Rank() > 0
}

// Entities are free-text lists pulled out of a document by analysis.
type Entities struct {
	Names   []string `json:"names"`
	Places  []string `json:"places"`
	Amounts []string `json:"amounts"`
}

// Document is an immutable record produced by the ingestion pipeline.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       Category  `json:"category"`
	Type           string    `json:"type"`
	Department     string    `json:"department"`
	Date           string    `json:"date"`
	Language       string    `json:"language"`
	Urgency        Urgency   `json:"urgency"`
	Summary        string    `json:"summary"`
	Tags           []string  `json:"tags"`
	KeyPoints      []string  `json:"key_points"`
	Entities       Entities  `json:"entities"`
	AnalyticsReady bool      `json:"analytics_ready"`
	UploadedBy     string    `json:"uploaded_by"`
	SourceKey      string    `json:"source_key"`
	FileType       string    `json:"file_type"`
	FileSize       string    `json:"file_size"`
	Pages          int       `json:"pages"`
	CreatedAt      time.Time `json:"created_at"`
}

// Analysis is the structured result reported by a text-analysis collaborator.
// Urgency uses the collaborator vocabulary (low, medium, high).
type Analysis struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Department     string   `json:"department"`
	Date           string   `json:"date"`
	Language       string   `json:"language"`
	Urgency        string   `json:"urgency"`
	Entities       Entities `json:"entities"`
	Summary        string   `json:"summary"`
	KeyPoints      []string `json:"key_points"`
	AnalyticsReady bool     `json:"analytics_ready"`
}

// Analysis urgency levels.
const (
	AnalysisUrgencyLow    = "low"
	AnalysisUrgencyMedium = "medium"
	AnalysisUrgencyHigh   = "high"
)

// UrgencyFromAnalysis maps the collaborator vocabulary onto record urgency.
func UrgencyFromAnalysis(level string) Urgency {
	switch level {
	case AnalysisUrgencyHigh:
		return UrgencyCritical
	case AnalysisUrgencyLow:
		return UrgencyInfo
	default:
		return UrgencyReview
	}
}
