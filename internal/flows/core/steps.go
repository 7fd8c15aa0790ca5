package core

import "context"

type Step struct {
	Name    string
	Execute func(ctx context.Context, fc *FlowContext) error
}

func NewStep(name string, execute func(ctx context.Context, fc *FlowContext) error) *Step {
	return &Step{
		Name:    name,
		Execute: execute,
	}
}
