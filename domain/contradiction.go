package domain

import (
	"github.com/google/uuid"
)

// Severity classifies how seriously two findings conflict.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func ValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// RuleKind identifies which detection rule produced a contradiction.
// Resolution guidance is selected by this tag, not by parsing Description.
type RuleKind string

const (
	RuleDirectionDisagreement RuleKind = "direction_disagreement"
	RuleSeverityConflict      RuleKind = "severity_conflict"
	RuleScheduleMismatch      RuleKind = "schedule_mismatch"
	RuleCostDivergence        RuleKind = "cost_divergence"
	RuleRootCauseDisagreement RuleKind = "root_cause_disagreement"
	RuleMitigationConflict    RuleKind = "mitigation_conflict"
	RuleConfidenceDisparity   RuleKind = "confidence_disparity"
)

// Contradiction records a disagreement between two findings from different
// agents. Severity may be raised after detection by the severity
// classifier. Resolution holds advisory guidance only; Resolved is owned by
// the caller's workflow and is never set by the engine.
type Contradiction struct {
	ID          uuid.UUID `json:"id"`
	Rule        RuleKind  `json:"rule"`
	FindingA    Finding   `json:"finding_a"`
	FindingB    Finding   `json:"finding_b"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Resolution  string    `json:"resolution,omitempty"`
	Resolved    bool      `json:"resolved"`
}

// AgentPair returns the two agent names in lexical order, for grouping
// contradictions by the pair of agents involved.
func (c Contradiction) AgentPair() [2]string {
	a, b := c.FindingA.AgentName, c.FindingB.AgentName
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
