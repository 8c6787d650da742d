package contradiction

import (
	"fmt"

	"github.com/crosscheckhq/crosscheck/domain"
)

// SuggestResolution returns actionable guidance for resolving a
// contradiction, selected by the rule that produced it. The text is
// advisory only; it names both agents and is deterministic for a given
// contradiction. Contradictions constructed outside the detector, with an
// unknown rule tag, get the generic reconciliation template.
func SuggestResolution(c domain.Contradiction) string {
	agentA := c.FindingA.AgentName
	agentB := c.FindingB.AgentName

	switch c.Rule {
	case domain.RuleDirectionDisagreement:
		return fmt.Sprintf(
			"Resolution: Convene a joint review between %s and %s to align on the "+
				"underlying EVM data. Verify that both agents are analyzing the same "+
				"reporting period and WBS scope. If the disagreement persists, defer to "+
				"the CPR Format 1 data as the authoritative source and flag the "+
				"discrepancy for the program manager.",
			agentA, agentB)

	case domain.RuleSeverityConflict:
		return fmt.Sprintf(
			"Resolution: Apply the DoD 5x5 risk matrix consistently. Have %s and %s "+
				"independently re-score using the standardized likelihood and consequence "+
				"definitions. If scores still differ, escalate to the Risk Review Board "+
				"for adjudication with documented rationale.",
			agentA, agentB)

	case domain.RuleScheduleMismatch:
		return fmt.Sprintf(
			"Resolution: Cross-reference the estimates from %s and %s against the IMS "+
				"critical path analysis. Validate assumptions about parallel vs. serial "+
				"task execution, resource availability, and dependency logic. The IMS "+
				"network schedule should be the single source of truth for duration "+
				"estimates.",
			agentA, agentB)

	case domain.RuleCostDivergence:
		return fmt.Sprintf(
			"Resolution: Reconcile the EAC methodologies used by %s and %s. Verify "+
				"whether each is using CPI-based (EAC = BAC/CPI), composite index, or "+
				"bottom-up estimates. Align on a single EAC methodology per program "+
				"guidance and document the basis of estimate. Present all three EAC "+
				"methods in the variance analysis report for leadership visibility.",
			agentA, agentB)

	case domain.RuleRootCauseDisagreement:
		return fmt.Sprintf(
			"Resolution: Conduct a structured root cause analysis (e.g., Ishikawa or "+
				"5-Why) with participation from both %s and %s. Multiple root causes may "+
				"be valid (contributing factors). Document the causal chain and weight "+
				"each factor's contribution before selecting corrective actions.",
			agentA, agentB)

	case domain.RuleMitigationConflict:
		return fmt.Sprintf(
			"Resolution: Evaluate the corrective actions proposed by %s and %s using a "+
				"cost-benefit analysis. Consider whether the actions are truly mutually "+
				"exclusive or can be sequenced (e.g., short-term mitigation followed by "+
				"longer-term strategic change). Present trade-offs to the program manager "+
				"for a decision informed by both perspectives.",
			agentA, agentB)

	case domain.RuleConfidenceDisparity:
		return fmt.Sprintf(
			"Resolution: Examine the evidence base underlying the confidence levels "+
				"reported by %s and %s. The agent with lower confidence should identify "+
				"what additional data would increase certainty. Consider whether the "+
				"higher-confidence agent has access to data the other lacks, and share "+
				"information to converge on a justified confidence level.",
			agentA, agentB)
	}

	return fmt.Sprintf(
		"Resolution: Schedule a reconciliation review between %s and %s. Each agent "+
			"should present its evidence, methodology, and assumptions. Identify the "+
			"root cause of the disagreement and document the agreed resolution with "+
			"supporting rationale.",
		agentA, agentB)
}
