package datatable

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewEditDefaultNavigation(t *testing.T) {
	actions := NewActions(true, true, false)

	view, err := actions.View("42")
	require.NoError(t, err)
	assert.Equal(t, "view/42", view)

	edit, err := actions.Edit("42")
	require.NoError(t, err)
	assert.Equal(t, "edit/42", edit)
}

func TestExplicitHandlersWin(t *testing.T) {
	actions := NewActions(true, true, false)
	actions.OnView = func(id string) string { return "/customers/" + id }

	view, err := actions.View("7")
	require.NoError(t, err)
	assert.Equal(t, "/customers/7", view)
}

func TestDisabledActionsAreRejected(t *testing.T) {
	actions := NewActions(false, false, false)

	_, err := actions.View("1")
	assert.Error(t, err)
	_, err = actions.Edit("1")
	assert.Error(t, err)
	assert.Error(t, actions.Delete(context.Background(), "1"))
}

func TestDeleteWithoutHandlerIsNonDestructive(t *testing.T) {
	actions := NewActions(false, false, true)
	assert.NoError(t, actions.Delete(context.Background(), "3"))
	assert.False(t, actions.DeleteBusy("3"))
}

func TestDeleteBusyUntilHandlerSettles(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	// Only the first invocation blocks; the re-enable check at the end
	// invokes the handler again and must not touch the channels.
	var first sync.Once
	actions := NewActions(false, false, true)
	actions.OnDelete = func(ctx context.Context, id string) error {
		first.Do(func() {
			close(started)
			<-release
		})
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = actions.Delete(context.Background(), "5")
	}()

	<-started
	assert.True(t, actions.DeleteBusy("5"))

	// A second click while pending is refused, not queued
	err := actions.Delete(context.Background(), "5")
	assert.ErrorIs(t, err, ErrDeleteInFlight)

	// A different row is unaffected
	assert.False(t, actions.DeleteBusy("6"))

	close(release)
	wg.Wait()

	// Settled: the action re-enables
	require.Eventually(t, func() bool {
		return !actions.DeleteBusy("5")
	}, time.Second, 10*time.Millisecond)
	assert.NoError(t, actions.Delete(context.Background(), "5"))
}

func TestDeleteReenablesAfterFailure(t *testing.T) {
	calls := 0
	actions := NewActions(false, false, true)
	actions.OnDelete = func(ctx context.Context, id string) error {
		calls++
		if calls == 1 {
			return assert.AnError
		}
		return nil
	}

	assert.Error(t, actions.Delete(context.Background(), "9"))
	assert.False(t, actions.DeleteBusy("9"))
	assert.NoError(t, actions.Delete(context.Background(), "9"))
	assert.Equal(t, 2, calls)
}
