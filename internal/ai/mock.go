package ai

import (
	"context"

	"github.com/mathewar/apty/internal/domain"
)

// Mock is a deterministic Triager and DocumentAnalyzer for tests and for
// deployments without an API key.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Triage(_ context.Context, in TriageInput) (*TriageResult, error) {
	return &TriageResult{
		Category:          "other",
		SuggestedPriority: domain.PriorityNormal,
		VendorType:        "building_super",
		Summary:           "Mock triage: " + in.Title,
		UrgencyReason:     "mock adapter always suggests normal priority",
	}, nil
}

func (m *Mock) Analyze(_ context.Context, _ string) (*DocumentAnalysis, error) {
	return &DocumentAnalysis{
		Title:      "Mock analysis",
		Summary:    "No generative backend configured; returning placeholder analysis.",
		Highlights: []string{"mock adapter in use"},
		Charts:     []Chart{},
	}, nil
}
