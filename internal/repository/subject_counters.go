package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const applyCounterDeltaQuery = `UPDATE subjects SET
        total_classes = GREATEST(0, total_classes + $1),
        present = GREATEST(0, present + $2),
        absent = GREATEST(0, absent + $3)
        WHERE id = $4`

// applyCounterDelta adjusts a subject's counters inside tx. The arithmetic runs
// in the database so concurrent transactions never lose an update.
func applyCounterDelta(ctx context.Context, tx sqlx.ExecerContext, subjectID int64, delta models.CounterDelta) error {
	if delta.IsZero() {
		return nil
	}
	if _, err := tx.ExecContext(ctx, applyCounterDeltaQuery, delta.Total(), delta.Present, delta.Absent, subjectID); err != nil {
		return fmt.Errorf("apply counter delta to subject %d: %w", subjectID, err)
	}
	return nil
}

// applyCounterDeltas applies per-subject deltas in ascending subject id order
// so concurrent multi-subject updates lock rows in the same order.
func applyCounterDeltas(ctx context.Context, tx sqlx.ExecerContext, deltas map[int64]models.CounterDelta) error {
	ids := make([]int64, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := applyCounterDelta(ctx, tx, id, deltas[id]); err != nil {
			return err
		}
	}
	return nil
}
