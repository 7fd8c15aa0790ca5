package core

import (
	"context"
	"fmt"
)

// Flow is an ordered pipeline of named steps. A step failure aborts the
// pipeline; later steps never run.
type Flow interface {
	Name() string
	Steps() []*Step
}

type Engine struct {
	flows map[string]Flow
}

func NewEngine(flows ...Flow) *Engine {
	m := map[string]Flow{}
	for _, f := range flows {
		m[f.Name()] = f
	}
	return &Engine{flows: m}
}

func (e *Engine) Run(ctx context.Context, flowName string, fc *FlowContext) error {
	f, exists := e.flows[flowName]
	if !exists {
		return fmt.Errorf("unsupported flow: %v", flowName)
	}
	for _, step := range f.Steps() {
		if err := step.Execute(ctx, fc); err != nil {
			return fmt.Errorf("%s step failed, pipeline aborted: %w", step.Name, err)
		}
	}
	return nil
}

func (e *Engine) Available() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	return names
}
