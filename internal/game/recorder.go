package game

import (
	"context"
	"errors"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// NopRecorder 不做任何记录
type NopRecorder struct{}

// Record 实现 EventRecorder
func (NopRecorder) Record(context.Context, string, []models.CombatEvent) error {
	return nil
}

// MultiRecorder 依次写入多个记录器，单个失败不影响其余
type MultiRecorder []EventRecorder

// Record 实现 EventRecorder
func (m MultiRecorder) Record(ctx context.Context, roomID string, events []models.CombatEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, roomID, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
