package analysis

import (
	"context"
	"time"

	"documind/internal/model"
)

// Analyzer is the text-analysis collaborator used by the pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, fileName, text string) (model.Analysis, error)
}

// MockAnalyzer returns a fixed analysis regardless of input. It is the default
// when no Gemini API key is configured.
type MockAnalyzer struct {
	Fixture model.Analysis
	Now     func() time.Time
}

var _ Analyzer = (*MockAnalyzer)(nil)

// NewMock returns a MockAnalyzer reporting the KMRL surplus auction fixture.
func NewMock(now func() time.Time) *MockAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &MockAnalyzer{Fixture: AuctionFixture(), Now: now}
}

func (m *MockAnalyzer) Analyze(ctx context.Context, fileName, text string) (model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return model.Analysis{}, err
	}
	a := m.Fixture
	a.Date = m.Now().Format(DateLayout)
	a.Entities = model.Entities{
		Names:   append([]string(nil), m.Fixture.Entities.Names...),
		Places:  append([]string(nil), m.Fixture.Entities.Places...),
		Amounts: append([]string(nil), m.Fixture.Entities.Amounts...),
	}
	a.KeyPoints = append([]string(nil), m.Fixture.KeyPoints...)
	return a, nil
}

// AuctionFixture is the canned analysis of the KMRL surplus materials auction notice.
func AuctionFixture() model.Analysis {
	return model.Analysis{
		Title:      "KMRL Public Auction Notice - Surplus Materials Sale",
		Type:       "Legal/Regulatory",
		Department: "Procurement",
		Language:   "English",
		Urgency:    model.AnalysisUrgencyMedium,
		Summary: "Official auction notice from Kochi Metro Rail Limited for surplus materials including track components, " +
			"construction materials, electrical equipment, office furniture, and vehicle parts. Auction scheduled for " +
			"December 28, 2024 with registration fee of ₹5,000.",
		KeyPoints: []string{
			"Public auction of surplus railway materials",
			"Registration fee: ₹5,000 (non-refundable)",
			"Auction date: December 28, 2024 at 10:00 AM",
			"Items include track materials, electrical equipment, office furniture",
			"Payment due within 7 days of auction",
			"Pre-inspection allowed December 20-21, 2024",
		},
		Entities: model.Entities{
			Names:   []string{"Kochi Metro Rail Limited", "KMRL"},
			Places:  []string{"Kochi", "Administrative Building"},
			Amounts: []string{"₹5,000", "₹50,000", "₹25,000", "₹75,000", "₹10,000", "₹30,000"},
		},
		AnalyticsReady: true,
	}
}
