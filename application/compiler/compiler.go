package compiler

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
)

// ErrNoIntent is returned when no intent category matched the command
// or the matched handler could not produce any actions from it
var ErrNoIntent = errors.New("could not parse command")

// Compiler turns natural-language commands into validated action plans
type Compiler struct {
	logger *logrus.Logger
}

// NewCompiler - creates a new plan compiler
func NewCompiler(logger *logrus.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile classifies the command, dispatches to the intent's handler
// and validates the resulting plan. A *entities.ValidationError means
// the plan was rejected wholesale; nothing of it may execute.
func (c *Compiler) Compile(command string) (entities.ActionPlan, error) {
	normalized := strings.ToLower(strings.TrimSpace(command))
	if normalized == "" {
		return nil, ErrNoIntent
	}

	intent, ents := Classify(normalized)
	if intent == entities.IntentNone {
		c.logger.WithField("command", command).Debug("no intent matched")
		return nil, ErrNoIntent
	}

	handler, ok := handlerRegistry[intent]
	if !ok {
		c.logger.WithField("intent", intent).Warn("no handler registered for intent")
		return nil, ErrNoIntent
	}

	plan := handler(normalized, ents)
	if len(plan) == 0 {
		c.logger.WithFields(logrus.Fields{
			"intent":  intent,
			"command": command,
		}).Debug("handler produced no actions")
		return nil, ErrNoIntent
	}

	if err := entities.ValidatePlan(plan); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"intent":  intent,
		"actions": len(plan),
	}).Info("compiled action plan")

	return plan, nil
}
