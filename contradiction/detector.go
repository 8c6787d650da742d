package contradiction

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/crosscheckhq/crosscheck/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Detection policy constants. These trade recall for precision and are kept
// together so they can be recalibrated without touching rule structure.
const (
	// Schedule estimates further apart than this ratio are flagged.
	ScheduleRatioThreshold     = 1.5
	ScheduleRatioHighThreshold = 2.0

	// Cost estimates diverging by more than this fraction are flagged.
	CostDivergenceThreshold     = 0.10
	CostDivergenceHighThreshold = 0.25

	// Confidence gap between findings of the same type.
	ConfidenceGapThreshold     = 0.3
	ConfidenceGapHighThreshold = 0.5

	// Shared-word gates that keep unrelated findings from being paired.
	SeverityOverlapGate   = 5
	ConfidenceOverlapGate = 4
	RootCauseTopicGate    = 2

	// Severity tier distance that makes a severity conflict high.
	SeverityGapHighThreshold = 2

	// Characters of text compared after a causal connective.
	CauseSnippetLength = 80

	// Contradictions between one agent pair before severities escalate.
	PairEscalationThreshold = 3
)

// Detector runs the contradiction detection rules over a set of agent
// outputs. It holds no mutable state; construct one per component that
// needs detection and share it freely.
type Detector struct {
	logger *zap.Logger
}

func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

// Detect runs all detection rules against the agent outputs and returns
// every contradiction found, in rule order. Findings by the same agent are
// never compared against each other. Returns nil when fewer than two
// findings exist in total.
func (d *Detector) Detect(agentOutputs map[string]domain.AgentOutput) []domain.Contradiction {
	findings := flattenFindings(agentOutputs)
	if len(findings) < 2 {
		return nil
	}

	rules := []struct {
		kind domain.RuleKind
		run  func([]domain.Finding) []domain.Contradiction
	}{
		{domain.RuleDirectionDisagreement, d.ruleDirectionDisagreement},
		{domain.RuleSeverityConflict, d.ruleSeverityConflict},
		{domain.RuleScheduleMismatch, d.ruleScheduleMismatch},
		{domain.RuleCostDivergence, d.ruleCostDivergence},
		{domain.RuleRootCauseDisagreement, d.ruleRootCauseDisagreement},
		{domain.RuleMitigationConflict, d.ruleMitigationConflict},
		{domain.RuleConfidenceDisparity, d.ruleConfidenceDisparity},
	}

	var contradictions []domain.Contradiction
	for _, rule := range rules {
		found := rule.run(findings)
		if len(found) > 0 {
			d.logger.Debug("detection rule matched",
				zap.String("rule", string(rule.kind)),
				zap.Int("count", len(found)))
		}
		contradictions = append(contradictions, found...)
	}

	d.logger.Info("contradiction detection complete",
		zap.Int("agents", len(agentOutputs)),
		zap.Int("findings", len(findings)),
		zap.Int("contradictions", len(contradictions)))

	return contradictions
}

// flattenFindings collects all findings across agents. Agent names are
// sorted so repeated runs over the same input produce the same ordering.
func flattenFindings(agentOutputs map[string]domain.AgentOutput) []domain.Finding {
	names := make([]string, 0, len(agentOutputs))
	for name := range agentOutputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var findings []domain.Finding
	for _, name := range names {
		findings = append(findings, agentOutputs[name].Findings...)
	}
	return findings
}

func newContradiction(rule domain.RuleKind, a, b domain.Finding, description string, severity domain.Severity) domain.Contradiction {
	return domain.Contradiction{
		ID:          uuid.New(),
		Rule:        rule,
		FindingA:    a,
		FindingB:    b,
		Description: description,
		Severity:    severity,
	}
}

// filterByTerms keeps findings whose case-folded content contains any of
// the given terms.
func filterByTerms(findings []domain.Finding, terms []string) []domain.Finding {
	var relevant []domain.Finding
	for _, f := range findings {
		if hasAnyKeyword(strings.ToLower(f.Content), terms) {
			relevant = append(relevant, f)
		}
	}
	return relevant
}

// Rule 1: performance-index direction disagreement. One agent says CPI/SPI
// is improving while another says it is worsening.

var indexTerms = []string{"cpi", "spi", "cost performance", "schedule performance"}

func (d *Detector) ruleDirectionDisagreement(findings []domain.Finding) []domain.Contradiction {
	relevant := filterByTerms(findings, indexTerms)

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			aImproving, aWorsening := Improving(a.Content), Worsening(a.Content)
			bImproving, bWorsening := Improving(b.Content), Worsening(b.Content)

			if (aImproving && bWorsening) || (aWorsening && bImproving) {
				description := fmt.Sprintf(
					"CPI/SPI direction disagreement: '%s' indicates %s while '%s' indicates %s.",
					a.AgentName, directionWord(aImproving),
					b.AgentName, directionWord(bImproving))
				results = append(results, newContradiction(
					domain.RuleDirectionDisagreement, a, b, description, domain.SeverityHigh))
			}
		}
	}
	return results
}

func directionWord(improving bool) string {
	if improving {
		return "improvement"
	}
	return "decline"
}

// Rule 2: risk severity conflict. Two agents label what looks like the same
// risk with different severity tiers.

var riskTerms = []string{"risk", "threat", "issue", "concern", "hazard"}

func (d *Detector) ruleSeverityConflict(findings []domain.Finding) []domain.Contradiction {
	relevant := filterByTerms(findings, riskTerms)

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			labelA, okA := SeverityLabel(a.Content)
			labelB, okB := SeverityLabel(b.Content)
			if !okA || !okB || labelA == labelB {
				continue
			}
			if sharedWordCount(a.Content, b.Content, overlapStopWords) < SeverityOverlapGate {
				continue
			}

			severity := domain.SeverityMedium
			if severityGap(labelA, labelB) >= SeverityGapHighThreshold {
				severity = domain.SeverityHigh
			}
			description := fmt.Sprintf(
				"Risk severity conflict: '%s' rates as %s while '%s' rates as %s.",
				a.AgentName, labelA, b.AgentName, labelB)
			results = append(results, newContradiction(
				domain.RuleSeverityConflict, a, b, description, severity))
		}
	}
	return results
}

// Rule 3: schedule impact mismatch. Reported slip durations for the same
// schedule event differ by more than 50%.

var scheduleTerms = []string{"slip", "delay", "behind schedule", "late", "schedule impact"}

func (d *Detector) ruleScheduleMismatch(findings []domain.Finding) []domain.Contradiction {
	relevant := filterByTerms(findings, scheduleTerms)

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			daysA, okA := MaxDurationDays(a.Content)
			daysB, okB := MaxDurationDays(b.Content)
			if !okA || !okB || daysA <= 0 || daysB <= 0 {
				continue
			}

			ratio := math.Max(daysA, daysB) / math.Min(daysA, daysB)
			if ratio <= ScheduleRatioThreshold {
				continue
			}

			severity := domain.SeverityMedium
			if ratio > ScheduleRatioHighThreshold {
				severity = domain.SeverityHigh
			}
			description := fmt.Sprintf(
				"Schedule impact mismatch: '%s' estimates ~%.0f days while '%s' estimates ~%.0f days.",
				a.AgentName, daysA, b.AgentName, daysB)
			results = append(results, newContradiction(
				domain.RuleScheduleMismatch, a, b, description, severity))
		}
	}
	return results
}

// Rule 4: cost estimate divergence. EAC or other cost figures differ by
// more than 10%.

var costTerms = []string{"eac", "estimate at completion", "cost estimate", "projected cost", "total cost"}

var usdPrinter = message.NewPrinter(language.English)

func (d *Detector) ruleCostDivergence(findings []domain.Finding) []domain.Contradiction {
	relevant := filterByTerms(findings, costTerms)

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			dollarsA, okA := MaxDollar(a.Content)
			dollarsB, okB := MaxDollar(b.Content)
			if !okA || !okB || dollarsA <= 0 || dollarsB <= 0 {
				continue
			}

			pctDiff := math.Abs(dollarsA-dollarsB) / math.Min(dollarsA, dollarsB)
			if pctDiff <= CostDivergenceThreshold {
				continue
			}

			severity := domain.SeverityMedium
			if pctDiff > CostDivergenceHighThreshold {
				severity = domain.SeverityHigh
			}
			description := fmt.Sprintf(
				"Cost estimate divergence (%.0f%%): '%s' cites %s while '%s' cites %s.",
				pctDiff*100,
				a.AgentName, usdPrinter.Sprintf("$%.0f", dollarsA),
				b.AgentName, usdPrinter.Sprintf("$%.0f", dollarsB))
			results = append(results, newContradiction(
				domain.RuleCostDivergence, a, b, description, severity))
		}
	}
	return results
}

// Rule 5: root cause disagreement. Both findings use the same causal
// connective on a shared topic but attribute different causes.

var causalConnectives = []string{
	"root cause", "caused by", "attributed to", "driven by", "due to", "because of",
}

// Domain vocabulary used as the topical gate for root-cause comparison.
// Matched against whole whitespace tokens, not substrings.
var causeTopicVocabulary = map[string]struct{}{
	"cost": {}, "schedule": {}, "quality": {}, "supplier": {}, "rework": {},
	"assembly": {}, "wing": {}, "fastener": {}, "composite": {}, "labor": {},
	"material": {}, "delivery": {}, "manufacturing": {}, "tooling": {},
	"design": {}, "engineering": {}, "testing": {}, "production": {},
	"avionics": {}, "structures": {}, "integration": {}, "software": {},
}

func (d *Detector) ruleRootCauseDisagreement(findings []domain.Finding) []domain.Contradiction {
	relevant := filterByTerms(findings, causalConnectives)

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			topics := sharedTopics(a.Content, b.Content)
			if len(topics) < RootCauseTopicGate {
				continue
			}

			textA := strings.ToLower(a.Content)
			textB := strings.ToLower(b.Content)

			// First connective present in both findings wins; later
			// connectives are not checked once one match is emitted.
			// Known limitation: this can under-report pairs that also
			// disagree after a later connective.
			for _, term := range causalConnectives {
				idxA := strings.Index(textA, term)
				idxB := strings.Index(textB, term)
				if idxA < 0 || idxB < 0 {
					continue
				}
				if causeSnippet(textA, idxA+len(term)) != causeSnippet(textB, idxB+len(term)) {
					description := fmt.Sprintf(
						"Root cause disagreement on %s: '%s' vs '%s' identify different underlying causes.",
						strings.Join(topics, ", "), a.AgentName, b.AgentName)
					results = append(results, newContradiction(
						domain.RuleRootCauseDisagreement, a, b, description, domain.SeverityMedium))
					break
				}
			}
		}
	}
	return results
}

// sharedTopics returns the domain-vocabulary words present in both texts,
// sorted for stable descriptions.
func sharedTopics(a, b string) []string {
	wordsA := wordSet(a)
	wordsB := wordSet(b)

	var shared []string
	for w := range wordsA {
		if _, relevant := causeTopicVocabulary[w]; !relevant {
			continue
		}
		if _, ok := wordsB[w]; ok {
			shared = append(shared, w)
		}
	}
	sort.Strings(shared)
	return shared
}

func causeSnippet(text string, start int) string {
	end := start + CauseSnippetLength
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}

// Rule 6: mitigation / corrective action conflict. Only recommendation and
// action findings are compared; each opposite-keyword pair that matches
// emits its own contradiction.

type opposingActions struct {
	sideX []string
	sideY []string
	label string
}

var actionConflictPairs = []opposingActions{
	{
		sideX: []string{"accelerate", "expedite", "fast-track", "compress"},
		sideY: []string{"defer", "delay", "postpone", "descope"},
		label: "schedule approach: acceleration vs. deferral",
	},
	{
		sideX: []string{"dual-source", "dual source", "alternate source", "second source"},
		sideY: []string{"sole-source", "sole source", "single source", "incumbent"},
		label: "sourcing strategy: dual-source vs. sole-source",
	},
	{
		sideX: []string{"increase staffing", "add resources", "augment workforce", "hire", "overtime"},
		sideY: []string{"reduce cost", "cut spending", "reduce headcount", "stop overtime"},
		label: "resource strategy: increase vs. reduce",
	},
	{
		sideX: []string{"rebaseline", "reset baseline", "over-target baseline"},
		sideY: []string{"maintain baseline", "hold baseline", "keep baseline", "no rebaseline"},
		label: "baseline strategy: rebaseline vs. maintain",
	},
	{
		sideX: []string{"accept risk", "risk acceptance", "accept the risk"},
		sideY: []string{"mitigate risk", "risk mitigation", "reduce risk", "eliminate risk"},
		label: "risk response: acceptance vs. mitigation",
	},
}

func (d *Detector) ruleMitigationConflict(findings []domain.Finding) []domain.Contradiction {
	var relevant []domain.Finding
	for _, f := range findings {
		if f.FindingType.Actionable() {
			relevant = append(relevant, f)
		}
	}

	var results []domain.Contradiction
	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			a, b := relevant[i], relevant[j]
			if a.AgentName == b.AgentName {
				continue
			}

			textA := strings.ToLower(a.Content)
			textB := strings.ToLower(b.Content)

			for _, pair := range actionConflictPairs {
				aInX := hasAnyKeyword(textA, pair.sideX)
				aInY := hasAnyKeyword(textA, pair.sideY)
				bInX := hasAnyKeyword(textB, pair.sideX)
				bInY := hasAnyKeyword(textB, pair.sideY)

				if (aInX && bInY) || (aInY && bInX) {
					description := fmt.Sprintf(
						"Mitigation conflict on %s: '%s' vs '%s'.",
						pair.label, a.AgentName, b.AgentName)
					results = append(results, newContradiction(
						domain.RuleMitigationConflict, a, b, description, domain.SeverityHigh))
				}
			}
		}
	}
	return results
}

// Rule 7: confidence disparity. Findings of the same type on similar
// subject matter whose confidence scores differ by more than the gap
// threshold.

func (d *Detector) ruleConfidenceDisparity(findings []domain.Finding) []domain.Contradiction {
	var results []domain.Contradiction
	for i := 0; i < len(findings); i++ {
		for j := i + 1; j < len(findings); j++ {
			a, b := findings[i], findings[j]
			if a.AgentName == b.AgentName {
				continue
			}
			if a.FindingType != b.FindingType {
				continue
			}

			gap := math.Abs(a.Confidence - b.Confidence)
			if gap <= ConfidenceGapThreshold {
				continue
			}
			if sharedWordCount(a.Content, b.Content, confidenceStopWords) < ConfidenceOverlapGate {
				continue
			}

			severity := domain.SeverityMedium
			if gap > ConfidenceGapHighThreshold {
				severity = domain.SeverityHigh
			}
			description := fmt.Sprintf(
				"Confidence disparity (%.2f) on %s findings: '%s' at %.2f vs '%s' at %.2f.",
				gap, a.FindingType,
				a.AgentName, a.Confidence,
				b.AgentName, b.Confidence)
			results = append(results, newContradiction(
				domain.RuleConfidenceDisparity, a, b, description, severity))
		}
	}
	return results
}
