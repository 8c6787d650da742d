package contradiction

import (
	"github.com/crosscheckhq/crosscheck/domain"
	"go.uber.org/zap"
)

// ClassifySeverity re-examines detected contradictions using signals that
// cut across rules, escalating severities in place. It returns the same
// slice for chaining.
//
// Escalation is single-step: a pair of agents with at least
// PairEscalationThreshold contradictions between them raises each of those
// contradictions one tier (low to medium, or medium to high), never two
// tiers in one pass. Contradictions where both findings are
// recommendations or actions are raised from low to medium regardless of
// pair count.
//
// Call exactly once per detection cycle. A second invocation on an
// already-escalated list can escalate further, since the pair counts are
// re-read after the prior mutation.
func (d *Detector) ClassifySeverity(contradictions []domain.Contradiction) []domain.Contradiction {
	if len(contradictions) == 0 {
		return contradictions
	}

	pairCounts := make(map[[2]string]int)
	for _, c := range contradictions {
		pairCounts[c.AgentPair()]++
	}

	escalated := 0
	for i := range contradictions {
		c := &contradictions[i]
		count := pairCounts[c.AgentPair()]

		switch {
		case count >= PairEscalationThreshold && c.Severity == domain.SeverityLow:
			c.Severity = domain.SeverityMedium
			escalated++
		case count >= PairEscalationThreshold && c.Severity == domain.SeverityMedium:
			c.Severity = domain.SeverityHigh
			escalated++
		}

		if c.FindingA.FindingType.Actionable() &&
			c.FindingB.FindingType.Actionable() &&
			c.Severity == domain.SeverityLow {
			c.Severity = domain.SeverityMedium
			escalated++
		}
	}

	if escalated > 0 {
		d.logger.Debug("escalated contradiction severities",
			zap.Int("contradictions", len(contradictions)),
			zap.Int("escalated", escalated))
	}

	return contradictions
}
