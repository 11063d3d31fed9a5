package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/models"
	"github.com/kelaskita/timetable/internal/repository"
	"github.com/kelaskita/timetable/internal/snapshot"
)

// dbQueryRecorder is the subset of MetricsService the writer needs, kept as
// an interface so tests can pass nil without importing the service package.
type dbQueryRecorder interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Writer is C6, the solution writer: it replaces the persisted timetable with
// a winning SolveOutcome inside a single transaction (spec §4.6).
type Writer struct {
	db         *sqlx.DB
	timeslots  *repository.TimeslotRepository
	assignment *repository.AssignmentRepository
	runs       *repository.ScheduleRunRepository
	metrics    dbQueryRecorder
}

// NewWriter constructs the solution writer from its three repositories.
// metrics may be nil; its methods are safe to call on a nil receiver.
func NewWriter(db *sqlx.DB, timeslots *repository.TimeslotRepository, assignments *repository.AssignmentRepository, runs *repository.ScheduleRunRepository, metrics dbQueryRecorder) *Writer {
	return &Writer{db: db, timeslots: timeslots, assignment: assignments, runs: runs, metrics: metrics}
}

type cellKey struct {
	Group string
	Day   int
	Hour  int
}

// Persist atomically replaces every timeslot and assignment with the ones
// implied by outcome, and records the run that produced them. It refuses to
// write anything for a non-SOLVED outcome (spec §4.6 step 0).
func (w *Writer) Persist(ctx context.Context, snap *snapshot.Snapshot, outcome *SolveOutcome, score float64) (runID string, err error) {
	if outcome.Status != StatusSolved {
		return "", fmt.Errorf("refusing to persist a %s outcome", outcome.Status)
	}

	start := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.ObserveDBQuery("persist_schedule", time.Since(start))
		}
	}()

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin solution write tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Step 1: clear the previously persisted schedule. Assignments first so
	// nothing is ever left dangling on a deleted timeslot mid-transaction.
	if err = w.assignment.DeleteAll(ctx, tx); err != nil {
		return "", err
	}
	if err = w.timeslots.DeleteAll(ctx, tx); err != nil {
		return "", err
	}

	// Step 2: one Timeslot row per occupied (group, day, hour) cell, plus
	// one per empty cell of every group so free periods are visible.
	cells, cellOrder := cellsFromOutcome(snap, outcome)
	slotRows := make([]models.Timeslot, 0, len(cellOrder))
	for _, key := range cellOrder {
		group := snap.Groups[groupIndex(snap, key.Group)]
		weekday := snap.Config.DayIndices[key.Day]
		var subjectGroupID *string
		if subj, ok := cells[key]; ok && len(subj) > 0 {
			if sg := snap.Subjects[subj[0].Subject].SubjectGroupID; sg != "" {
				id := sg
				subjectGroupID = &id
			}
		}
		slotRows = append(slotRows, models.Timeslot{
			CourseID:       group.CourseID,
			Line:           group.Line,
			Day:            weekday,
			Hour:           key.Hour,
			SubjectGroupID: subjectGroupID,
		})
	}
	inserted, err := w.timeslots.InsertBatch(ctx, tx, slotRows)
	if err != nil {
		return "", err
	}

	timeslotID := make(map[cellKey]int64, len(inserted))
	for i, key := range cellOrder {
		timeslotID[key] = inserted[i].ID
	}

	// Step 3: one Assignment row per decision variable set to 1.
	var assignRows []models.Assignment
	for key, placed := range cells {
		tid := timeslotID[key]
		for _, a := range placed {
			teacherID := a.Teacher
			assignRows = append(assignRows, models.Assignment{
				TimeslotID: tid,
				SubjectID:  a.Subject,
				TeacherID:  &teacherID,
			})
		}
	}
	if err = w.assignment.InsertBatch(ctx, tx, assignRows); err != nil {
		return "", err
	}

	// Step 4: record the run that produced this schedule (spec §4.7).
	run := &models.ScheduleRun{
		Status:    runStatus(outcome),
		Score:     score,
		Persisted: true,
	}
	if err = w.runs.CreateVersioned(ctx, tx, run); err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("commit solution write tx: %w", err)
	}
	return run.ID, nil
}

func cellsFromOutcome(snap *snapshot.Snapshot, outcome *SolveOutcome) (map[cellKey][]Assignment, []cellKey) {
	cells := make(map[cellKey][]Assignment)
	for _, group := range snap.Groups {
		for day := 0; day < len(snap.Config.DayIndices); day++ {
			for hour := 0; hour < snap.Config.ClassesPerDay; hour++ {
				cells[cellKey{Group: group.ID, Day: day, Hour: hour}] = nil
			}
		}
	}
	for _, a := range outcome.Assignments {
		key := cellKey{Group: a.Group, Day: a.Day, Hour: a.Hour}
		cells[key] = append(cells[key], a)
	}

	order := make([]cellKey, 0, len(cells))
	for key := range cells {
		order = append(order, key)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Hour < b.Hour
	})
	return cells, order
}

func groupIndex(snap *snapshot.Snapshot, groupID string) int {
	for i, g := range snap.Groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}

func runStatus(outcome *SolveOutcome) models.ScheduleRunStatus {
	switch outcome.SolverStatus {
	case cpsat.StatusOptimal:
		return models.ScheduleRunStatusOptimal
	case cpsat.StatusFeasible:
		return models.ScheduleRunStatusFeasible
	case cpsat.StatusInfeasible:
		return models.ScheduleRunStatusInfeasible
	default:
		return models.ScheduleRunStatusUnknown
	}
}
