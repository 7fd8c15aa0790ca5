package service

import (
	"context"

	"fleetrent/internal/flows/core"
	"fleetrent/pkg/logger"
)

type FlowService struct {
	engine *core.Engine
	log    *logger.Logger
}

func NewFlowService(engine *core.Engine, log *logger.Logger) *FlowService {
	return &FlowService{
		engine: engine,
		log:    log,
	}
}

func (s *FlowService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	fc := core.NewFlowContext(input)
	if err := s.engine.Run(ctx, flowName, fc); err != nil {
		return nil, err
	}
	return fc.Output, nil
}

func (s *FlowService) GetAvailableFlows() []string {
	return s.engine.Available()
}
