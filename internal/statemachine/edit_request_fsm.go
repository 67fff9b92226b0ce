package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// EditRequestFSM wraps an edit request with its decision state machine
type EditRequestFSM struct {
	request *models.EditRequest
	fsm     *fsm.FSM
}

// NewEditRequestFSM creates the decision state machine for an edit request
func NewEditRequestFSM(request *models.EditRequest) *EditRequestFSM {
	e := &EditRequestFSM{request: request}

	e.fsm = fsm.NewFSM(
		request.Status,
		fsm.Events{
			{Name: "approve", Src: []string{models.EditRequestStatusPending}, Dst: models.EditRequestStatusApproved},
			{Name: "reject", Src: []string{models.EditRequestStatusPending}, Dst: models.EditRequestStatusRejected},
		},
		fsm.Callbacks{},
	)

	return e
}

// Approve transitions the request to approved
func (e *EditRequestFSM) Approve(ctx context.Context) error {
	if !e.request.MayDecide() {
		return fmt.Errorf("edit request cannot be approved in current state: %s", e.request.Status)
	}

	if err := e.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve edit request: %w", err)
	}

	e.request.Status = e.fsm.Current()
	return nil
}

// Reject transitions the request to rejected
func (e *EditRequestFSM) Reject(ctx context.Context) error {
	if !e.request.MayDecide() {
		return fmt.Errorf("edit request cannot be rejected in current state: %s", e.request.Status)
	}

	if err := e.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject edit request: %w", err)
	}

	e.request.Status = e.fsm.Current()
	return nil
}

// Current returns the current state
func (e *EditRequestFSM) Current() string {
	return e.fsm.Current()
}
