package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

func TestApplyCounterDeltaZeroIssuesNoStatement(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	require.NoError(t, applyCounterDelta(context.Background(), db, 1, models.CounterDelta{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCounterDeltaClampsInDatabase(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec(`total_classes = GREATEST\(0, total_classes \+ \$1\)`).
		WithArgs(-1, -1, 0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, applyCounterDelta(context.Background(), db, 1, models.DeltaFor(models.AttendanceStatusPresent, -1)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCounterDeltasAscendingSubjectOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	for _, id := range []int64{1, 5, 12} {
		mock.ExpectExec(updateCounters).WithArgs(-1, -1, 0, id).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	deltas := map[int64]models.CounterDelta{
		12: {Present: -1},
		1:  {Present: -1},
		5:  {Present: -1},
		7:  {},
	}
	require.NoError(t, applyCounterDeltas(context.Background(), db, deltas))
	assert.NoError(t, mock.ExpectationsWereMet())
}
