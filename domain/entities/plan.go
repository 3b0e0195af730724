package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ActionPlan is an ordered sequence of validated actions. Insertion
// order is execution order. The executor only reads a plan; it never
// mutates it.
type ActionPlan []Action

// ValidatePlan validates every action in place and rejects the whole
// plan on the first malformed one
func ValidatePlan(plan ActionPlan) error {
	for i := range plan {
		if err := plan[i].Validate(); err != nil {
			return &ValidationError{Index: i, Action: plan[i].Type, Reason: err.Error()}
		}
	}
	return nil
}

// MarshalPlan encodes a plan as indented JSON, one record per action
func MarshalPlan(plan ActionPlan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}

// UnmarshalPlan decodes and validates a JSON plan
func UnmarshalPlan(data []byte) (ActionPlan, error) {
	var plan ActionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// OutcomeStatus classifies the result of one executed action
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeWarning OutcomeStatus = "warning"
	OutcomeFailed  OutcomeStatus = "failed"
)

// ExecutionOutcome records how a single plan action went. A failed
// outcome never aborts the remaining plan.
type ExecutionOutcome struct {
	Index    int           `json:"index"`
	Action   ActionType    `json:"action"`
	Status   OutcomeStatus `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ExecutionLog is the append-only record of one plan run
type ExecutionLog struct {
	RunID    string             `json:"run_id"`
	Started  time.Time          `json:"started"`
	Outcomes []ExecutionOutcome `json:"outcomes"`
}

// NewExecutionLog - creates an empty log with a fresh run identifier
func NewExecutionLog() *ExecutionLog {
	return &ExecutionLog{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

// Append records one outcome
func (l *ExecutionLog) Append(o ExecutionOutcome) {
	l.Outcomes = append(l.Outcomes, o)
}

// Failed returns the number of failed outcomes
func (l *ExecutionLog) Failed() int {
	n := 0
	for _, o := range l.Outcomes {
		if o.Status == OutcomeFailed {
			n++
		}
	}
	return n
}

// Summary returns a one-line run summary
func (l *ExecutionLog) Summary() string {
	warnings := 0
	for _, o := range l.Outcomes {
		if o.Status == OutcomeWarning {
			warnings++
		}
	}
	return fmt.Sprintf("%d actions, %d failed, %d warnings", len(l.Outcomes), l.Failed(), warnings)
}
