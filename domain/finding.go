package domain

import (
	"time"
)

type FindingType string

const (
	FindingObservation    FindingType = "observation"
	FindingAnalysis       FindingType = "analysis"
	FindingRecommendation FindingType = "recommendation"
	FindingAction         FindingType = "action"
)

func ValidFindingType(t string) bool {
	switch FindingType(t) {
	case FindingObservation, FindingAnalysis, FindingRecommendation, FindingAction:
		return true
	}
	return false
}

// Actionable reports whether the finding type carries a proposed course of
// action rather than an assessment.
func (t FindingType) Actionable() bool {
	return t == FindingRecommendation || t == FindingAction
}

// Finding is a single claim produced by one specialist agent. Findings are
// immutable once created; the detection engine only ever reads them.
type Finding struct {
	AgentName    string      `json:"agent_name"`
	FindingType  FindingType `json:"finding_type"`
	Content      string      `json:"content"`
	Confidence   float64     `json:"confidence"`
	EvidenceRefs []string    `json:"evidence_refs,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

// AgentOutput is the collected result of a single agent's run. The
// execution metadata is populated by the producing side; the contradiction
// engine reads only AgentName and Findings.
type AgentOutput struct {
	AgentName         string    `json:"agent_name"`
	Findings          []Finding `json:"findings"`
	OverallConfidence float64   `json:"overall_confidence"`
	ExecutionTimeMs   float64   `json:"execution_time_ms"`
	ToolCallsMade     int       `json:"tool_calls_made"`
	Errors            []string  `json:"errors,omitempty"`
}
