package core

import (
	"context"
	"errors"
	"testing"
)

type stubFlow struct {
	name  string
	steps []*Step
}

func (f *stubFlow) Name() string   { return f.name }
func (f *stubFlow) Steps() []*Step { return f.steps }

func TestRun_ExecutesStepsInOrder(t *testing.T) {
	var order []string
	flow := &stubFlow{
		name: "test_flow",
		steps: []*Step{
			NewStep("first", func(ctx context.Context, fc *FlowContext) error {
				order = append(order, "first")
				fc.Process["value"] = 1
				return nil
			}),
			NewStep("second", func(ctx context.Context, fc *FlowContext) error {
				order = append(order, "second")
				if fc.Process["value"] != 1 {
					t.Error("process state must carry between steps")
				}
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	fc := NewFlowContext(map[string]any{})

	if err := engine.Run(context.Background(), "test_flow", fc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected step order: %v", order)
	}
}

func TestRun_AbortsOnStepFailure(t *testing.T) {
	boom := errors.New("boom")
	secondRan := false
	flow := &stubFlow{
		name: "test_flow",
		steps: []*Step{
			NewStep("first", func(ctx context.Context, fc *FlowContext) error {
				return boom
			}),
			NewStep("second", func(ctx context.Context, fc *FlowContext) error {
				secondRan = true
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	err := engine.Run(context.Background(), "test_flow", NewFlowContext(nil))

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped step error, got %v", err)
	}
	if secondRan {
		t.Error("later steps must not run after a failure")
	}
}

func TestRun_UnknownFlow(t *testing.T) {
	engine := NewEngine()
	if err := engine.Run(context.Background(), "nope", NewFlowContext(nil)); err == nil {
		t.Fatal("expected error for unknown flow")
	}
}

func TestFlowContext_Extractors(t *testing.T) {
	fc := NewFlowContext(map[string]any{
		"name":  "Ana",
		"when":  "2026-09-10T10:00:00Z",
		"price": 3500.0,
	})

	name, err := fc.ExtractString("name")
	if err != nil || name != "Ana" {
		t.Errorf("ExtractString = %q, %v", name, err)
	}

	if _, err := fc.ExtractString("missing"); err == nil {
		t.Error("expected error for missing param")
	}

	when, err := fc.ExtractTime("when")
	if err != nil || when.Hour() != 10 {
		t.Errorf("ExtractTime = %v, %v", when, err)
	}

	if _, err := fc.ExtractTime("name"); err == nil {
		t.Error("expected error for non-RFC3339 time")
	}

	price, err := fc.ExtractFloat("price")
	if err != nil || price != 3500.0 {
		t.Errorf("ExtractFloat = %v, %v", price, err)
	}

	if got := fc.OptionalString("missing"); got != "" {
		t.Errorf("OptionalString for missing key = %q", got)
	}
}
