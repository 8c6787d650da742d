package contradiction

import (
	"testing"

	"github.com/crosscheckhq/crosscheck/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pairContradiction(agentA, agentB string, severity domain.Severity, typeA, typeB domain.FindingType) domain.Contradiction {
	return domain.Contradiction{
		ID:          uuid.New(),
		Rule:        domain.RuleSeverityConflict,
		FindingA:    domain.Finding{AgentName: agentA, FindingType: typeA, Content: "a", Confidence: 0.5},
		FindingB:    domain.Finding{AgentName: agentB, FindingType: typeB, Content: "b", Confidence: 0.5},
		Description: "test contradiction",
		Severity:    severity,
	}
}

func TestClassifySeverity_PairEscalation(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("cam_agent", "pm_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
	}

	got := d.ClassifySeverity(contradictions)

	// Three contradictions between the same pair (order-insensitive):
	// each low steps up exactly once, never straight to high.
	require.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, domain.SeverityMedium, c.Severity)
	}
}

func TestClassifySeverity_MediumBecomesHigh(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityMedium, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "cam_agent", domain.SeverityMedium, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "cam_agent", domain.SeverityMedium, domain.FindingObservation, domain.FindingAnalysis),
	}

	got := d.ClassifySeverity(contradictions)

	for _, c := range got {
		assert.Equal(t, domain.SeverityHigh, c.Severity)
	}
}

func TestClassifySeverity_BelowThresholdUnchanged(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "cam_agent", domain.SeverityMedium, domain.FindingObservation, domain.FindingAnalysis),
	}

	got := d.ClassifySeverity(contradictions)

	assert.Equal(t, domain.SeverityLow, got[0].Severity)
	assert.Equal(t, domain.SeverityMedium, got[1].Severity)
}

func TestClassifySeverity_DistinctPairsCountedSeparately(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
		pairContradiction("pm_agent", "risk_agent", domain.SeverityLow, domain.FindingObservation, domain.FindingAnalysis),
	}

	got := d.ClassifySeverity(contradictions)

	// No single pair reaches three contradictions.
	for _, c := range got {
		assert.Equal(t, domain.SeverityLow, c.Severity)
	}
}

func TestClassifySeverity_ActionableFindingsEscalateLow(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingRecommendation, domain.FindingAction),
		pairContradiction("pm_agent", "risk_agent", domain.SeverityMedium, domain.FindingRecommendation, domain.FindingAction),
		pairContradiction("pm_agent", "sq_agent", domain.SeverityLow, domain.FindingRecommendation, domain.FindingObservation),
	}

	got := d.ClassifySeverity(contradictions)

	// Both findings actionable and low: raised to medium.
	assert.Equal(t, domain.SeverityMedium, got[0].Severity)
	// Already medium: the actionable check only raises low.
	assert.Equal(t, domain.SeverityMedium, got[1].Severity)
	// Only one finding actionable: untouched.
	assert.Equal(t, domain.SeverityLow, got[2].Severity)
}

func TestClassifySeverity_Empty(t *testing.T) {
	d := NewDetector(zap.NewNop())

	assert.Empty(t, d.ClassifySeverity(nil))
	assert.Empty(t, d.ClassifySeverity([]domain.Contradiction{}))
}

func TestClassifySeverity_MutatesInPlace(t *testing.T) {
	d := NewDetector(zap.NewNop())

	contradictions := []domain.Contradiction{
		pairContradiction("pm_agent", "cam_agent", domain.SeverityLow, domain.FindingRecommendation, domain.FindingAction),
	}

	got := d.ClassifySeverity(contradictions)

	assert.Same(t, &contradictions[0], &got[0])
	assert.Equal(t, domain.SeverityMedium, contradictions[0].Severity)
}
