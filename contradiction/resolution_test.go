package contradiction

import (
	"testing"

	"github.com/crosscheckhq/crosscheck/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func resolutionContradiction(rule domain.RuleKind) domain.Contradiction {
	return domain.Contradiction{
		ID:          uuid.New(),
		Rule:        rule,
		FindingA:    domain.Finding{AgentName: "pm_agent", FindingType: domain.FindingAnalysis, Content: "a"},
		FindingB:    domain.Finding{AgentName: "cam_agent", FindingType: domain.FindingAnalysis, Content: "b"},
		Description: "test contradiction",
		Severity:    domain.SeverityMedium,
	}
}

func TestSuggestResolution_TemplatePerRule(t *testing.T) {
	tests := []struct {
		rule domain.RuleKind
		want string
	}{
		{domain.RuleDirectionDisagreement, "EVM data"},
		{domain.RuleSeverityConflict, "5x5 risk matrix"},
		{domain.RuleScheduleMismatch, "critical path analysis"},
		{domain.RuleCostDivergence, "EAC methodologies"},
		{domain.RuleRootCauseDisagreement, "root cause analysis"},
		{domain.RuleMitigationConflict, "cost-benefit analysis"},
		{domain.RuleConfidenceDisparity, "evidence base"},
	}

	for _, tt := range tests {
		t.Run(string(tt.rule), func(t *testing.T) {
			got := SuggestResolution(resolutionContradiction(tt.rule))

			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, "pm_agent")
			assert.Contains(t, got, "cam_agent")
		})
	}
}

func TestSuggestResolution_UnknownRuleGetsGenericTemplate(t *testing.T) {
	got := SuggestResolution(resolutionContradiction(domain.RuleKind("something_else")))

	assert.Contains(t, got, "reconciliation review")
	assert.Contains(t, got, "pm_agent")
	assert.Contains(t, got, "cam_agent")
}

func TestSuggestResolution_Deterministic(t *testing.T) {
	c := resolutionContradiction(domain.RuleCostDivergence)

	assert.Equal(t, SuggestResolution(c), SuggestResolution(c))
}
