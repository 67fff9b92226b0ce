package datatable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrDeleteInFlight is returned when a row's delete is invoked while a
// previous delete on the same row has not settled yet.
var ErrDeleteInFlight = errors.New("delete already in progress for this row")

// ViewHandler and EditHandler resolve where a row action navigates.
type ViewHandler func(id string) string

// DeleteHandler performs an asynchronous row deletion. It may block; the
// action set keeps the row's delete disabled until it settles.
type DeleteHandler func(ctx context.Context, id string) error

// Actions is the per-table row-action set. View, Edit and Delete are each
// independently toggleable; missing handlers fall back to conventional
// relative navigation (view/{id}, edit/{id}) or, for delete, a logged no-op
// that never destroys data silently.
type Actions struct {
	ViewEnabled   bool
	EditEnabled   bool
	DeleteEnabled bool

	OnView   ViewHandler
	OnEdit   ViewHandler
	OnDelete DeleteHandler

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewActions creates an action set with the given visibility flags.
func NewActions(view, edit, del bool) *Actions {
	return &Actions{
		ViewEnabled:   view,
		EditEnabled:   edit,
		DeleteEnabled: del,
		inFlight:      make(map[string]bool),
	}
}

// View resolves the view action for a row.
func (a *Actions) View(id string) (string, error) {
	if !a.ViewEnabled {
		return "", errors.New("view action is not enabled")
	}
	if a.OnView != nil {
		return a.OnView(id), nil
	}
	return fmt.Sprintf("view/%s", id), nil
}

// Edit resolves the edit action for a row.
func (a *Actions) Edit(id string) (string, error) {
	if !a.EditEnabled {
		return "", errors.New("edit action is not enabled")
	}
	if a.OnEdit != nil {
		return a.OnEdit(id), nil
	}
	return fmt.Sprintf("edit/%s", id), nil
}

// Delete runs the delete handler for a row, at most once at a time per row.
// While the handler has not settled the row's delete is busy and further
// calls fail with ErrDeleteInFlight, which is how double submission from a
// repeated click is prevented.
func (a *Actions) Delete(ctx context.Context, id string) error {
	if !a.DeleteEnabled {
		return errors.New("delete action is not enabled")
	}

	a.mu.Lock()
	if a.inFlight[id] {
		a.mu.Unlock()
		return ErrDeleteInFlight
	}
	a.inFlight[id] = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.inFlight, id)
		a.mu.Unlock()
	}()

	if a.OnDelete == nil {
		// Stand-in for a no-op: confirm nothing happened, destroy nothing.
		slog.Info("delete requested with no handler attached", "row_id", id)
		return nil
	}
	return a.OnDelete(ctx, id)
}

// DeleteBusy reports whether a row's delete is pending; the menu renders the
// item disabled with a busy state while this is true.
func (a *Actions) DeleteBusy(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight[id]
}
