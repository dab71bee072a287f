// Package ai defines the generative collaborators used for maintenance
// triage and document analysis. Both are opaque: they either return
// structured JSON matching the types below or fail.
package ai

import (
	"context"

	"github.com/mathewar/apty/internal/domain"
)

// TriageInput is the free-text description of a maintenance request.
type TriageInput struct {
	Title       string
	Description string
	Location    string
}

// TriageResult classifies a maintenance request.
type TriageResult struct {
	Category          string                 `json:"category"`
	SuggestedPriority domain.RequestPriority `json:"suggested_priority"`
	VendorType        string                 `json:"vendor_type"`
	Summary           string                 `json:"summary"`
	UrgencyReason     string                 `json:"urgency_reason"`
}

// Triager classifies maintenance requests.
type Triager interface {
	Triage(ctx context.Context, in TriageInput) (*TriageResult, error)
}

// ChartDataset is one labelled series of a bar chart.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Chart is one renderable chart extracted from a document.
type Chart struct {
	Type     string         `json:"type"` // "pie" or "bar"
	Title    string         `json:"title"`
	Labels   []string       `json:"labels"`
	Data     []float64      `json:"data,omitempty"`
	Datasets []ChartDataset `json:"datasets,omitempty"`
	Unit     string         `json:"unit,omitempty"`
}

// DocumentAnalysis is the structured summary of a financial document.
type DocumentAnalysis struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Charts     []Chart  `json:"charts"`
}

// DocumentAnalyzer extracts a resident-facing summary from a stored document.
// Text extraction from the underlying file is the analyzer's concern.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, filePath string) (*DocumentAnalysis, error)
}

// Valid enum values for triage results. Out-of-range values from the model
// are coerced to the defaults rather than rejected.
var (
	validCategories = map[string]struct{}{
		"plumbing": {}, "electrical": {}, "hvac": {}, "structural": {},
		"appliances": {}, "common_area": {}, "other": {},
	}
	validVendorTypes = map[string]struct{}{
		"plumber": {}, "electrician": {}, "hvac_tech": {},
		"general_contractor": {}, "building_super": {}, "other": {},
	}
	validPriorities = map[domain.RequestPriority]struct{}{
		domain.PriorityLow: {}, domain.PriorityNormal: {},
		domain.PriorityHigh: {}, domain.PriorityEmergency: {},
	}
)

// normalize clamps model output to the valid enums and fills defaults,
// mirroring the prompt contract.
func (t *TriageResult) normalize() {
	if _, ok := validCategories[t.Category]; !ok {
		t.Category = "other"
	}
	if _, ok := validPriorities[t.SuggestedPriority]; !ok {
		t.SuggestedPriority = domain.PriorityNormal
	}
	if _, ok := validVendorTypes[t.VendorType]; !ok {
		t.VendorType = "other"
	}
	if t.Summary == "" {
		t.Summary = "Maintenance request received."
	}
}
