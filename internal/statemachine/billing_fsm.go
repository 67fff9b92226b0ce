package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// BillingFSM wraps a billing transaction with its approval state machine.
// A transaction enters as enquired and leaves as approved or blocked; there
// is no way back, corrections are recorded as fresh transactions.
type BillingFSM struct {
	txn *models.BillingTransaction
	fsm *fsm.FSM
}

// NewBillingFSM creates the approval state machine for a transaction
func NewBillingFSM(txn *models.BillingTransaction) *BillingFSM {
	b := &BillingFSM{txn: txn}

	b.fsm = fsm.NewFSM(
		txn.Status,
		fsm.Events{
			{Name: "approve", Src: []string{models.BillingStatusEnquired}, Dst: models.BillingStatusApproved},
			{Name: "block", Src: []string{models.BillingStatusEnquired}, Dst: models.BillingStatusBlocked},
		},
		fsm.Callbacks{},
	)

	return b
}

// Approve transitions the transaction to approved
func (b *BillingFSM) Approve(ctx context.Context) error {
	if !b.txn.MayApprove() {
		return fmt.Errorf("billing transaction cannot be approved in current state: %s", b.txn.Status)
	}

	if err := b.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve billing transaction: %w", err)
	}

	b.txn.Status = b.fsm.Current()
	return nil
}

// Block transitions the transaction to blocked
func (b *BillingFSM) Block(ctx context.Context) error {
	if !b.txn.MayBlock() {
		return fmt.Errorf("billing transaction cannot be blocked in current state: %s", b.txn.Status)
	}

	if err := b.fsm.Event(ctx, "block"); err != nil {
		return fmt.Errorf("failed to block billing transaction: %w", err)
	}

	b.txn.Status = b.fsm.Current()
	return nil
}

// Current returns the current state
func (b *BillingFSM) Current() string {
	return b.fsm.Current()
}

// Can checks if a transition is possible
func (b *BillingFSM) Can(event string) bool {
	return b.fsm.Can(event)
}
