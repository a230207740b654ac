package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/WillCS/uqplanner/internal/clock"
	"github.com/WillCS/uqplanner/internal/export"
)

// ExportPlan renders the plan's selected classes as an iCalendar document.
func (e *Engine) ExportPlan(ctx context.Context, req *ExportPlanRequest) (*ExportResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	events, err := export.Events(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, p.Name, events, clock.Stamp(e.clock)); err != nil {
		return nil, fmt.Errorf("failed to render calendar: %w", err)
	}

	return &ExportResult{
		PlanID:   p.ID,
		FileName: export.FileName(p),
		Events:   len(events),
		Data:     buf.Bytes(),
	}, nil
}
