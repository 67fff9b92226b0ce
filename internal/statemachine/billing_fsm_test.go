package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperjas06/live-sub000/internal/models"
)

func TestBillingApproval(t *testing.T) {
	txn := &models.BillingTransaction{ID: 1, Status: models.BillingStatusEnquired}
	machine := NewBillingFSM(txn)

	require.True(t, machine.Can("approve"))
	require.NoError(t, machine.Approve(context.Background()))
	assert.Equal(t, models.BillingStatusApproved, txn.Status)

	// Approved is terminal
	assert.Error(t, machine.Block(context.Background()))
	assert.Error(t, machine.Approve(context.Background()))
}

func TestBillingBlock(t *testing.T) {
	txn := &models.BillingTransaction{ID: 2, Status: models.BillingStatusEnquired}
	machine := NewBillingFSM(txn)

	require.NoError(t, machine.Block(context.Background()))
	assert.Equal(t, models.BillingStatusBlocked, txn.Status)

	// Blocked is terminal
	assert.Error(t, machine.Approve(context.Background()))
}

func TestBlockedTransactionCannotBeApproved(t *testing.T) {
	txn := &models.BillingTransaction{ID: 3, Status: models.BillingStatusBlocked}
	machine := NewBillingFSM(txn)
	assert.False(t, machine.Can("approve"))
	assert.Error(t, machine.Approve(context.Background()))
	assert.Equal(t, models.BillingStatusBlocked, txn.Status)
}

func TestEditRequestDecision(t *testing.T) {
	tests := []struct {
		name   string
		decide func(*EditRequestFSM) error
		want   string
	}{
		{
			name:   "approve",
			decide: func(m *EditRequestFSM) error { return m.Approve(context.Background()) },
			want:   models.EditRequestStatusApproved,
		},
		{
			name:   "reject",
			decide: func(m *EditRequestFSM) error { return m.Reject(context.Background()) },
			want:   models.EditRequestStatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := &models.EditRequest{ID: 1, Status: models.EditRequestStatusPending}
			machine := NewEditRequestFSM(request)

			require.NoError(t, tt.decide(machine))
			assert.Equal(t, tt.want, request.Status)

			// Decisions are final
			assert.Error(t, machine.Approve(context.Background()))
			assert.Error(t, machine.Reject(context.Background()))
		})
	}
}
