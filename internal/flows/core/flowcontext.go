package core

import (
	"fmt"
	"time"
)

// FlowContext carries state across a flow's steps. Input is the caller's
// payload, Process holds intermediate values steps hand to each other, and
// Output is what the caller gets back.
type FlowContext struct {
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
}

func NewFlowContext(input map[string]any) *FlowContext {
	return &FlowContext{
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
	}
}

func MissingParamErr(paramName string) error {
	return fmt.Errorf("required param [%v] is missing", paramName)
}

func (c *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := c.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", MissingParamErr(key)
	}
	return s, nil
}

// OptionalString returns "" for a missing or non-string value.
func (c *FlowContext) OptionalString(key string) string {
	if raw, ok := c.Input[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func (c *FlowContext) ExtractTime(key string) (time.Time, error) {
	s, err := c.ExtractString(key)
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] must be RFC3339: %w", key, err)
	}
	return parsed, nil
}

// ExtractFloat accepts both float64 and JSON-decoded numeric strings.
func (c *FlowContext) ExtractFloat(key string) (float64, error) {
	raw, ok := c.Input[key]
	if !ok {
		return 0, MissingParamErr(key)
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("param [%v] must be a number", key)
	}
	return f, nil
}
