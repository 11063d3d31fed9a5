package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelaskita/timetable/internal/snapshot"
)

func TestWriterRefusesNonSolvedOutcome(t *testing.T) {
	w := NewWriter(nil, nil, nil, nil, nil)
	_, err := w.Persist(context.Background(), &snapshot.Snapshot{}, &SolveOutcome{Status: StatusNoSolution}, 0)
	assert.Error(t, err, "must refuse to persist before ever touching the database")
}
