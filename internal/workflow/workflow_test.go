package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"internhub/internal/errors"
	"internhub/internal/model"
)

func TestApplicationMachine_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     State
		event    Event
		expected State
		wantErr  bool
	}{
		{
			name:     "approve pending",
			from:     State(model.ApplicationStatusPending),
			event:    EventApprove,
			expected: State(model.ApplicationStatusApproved),
		},
		{
			name:     "reject pending",
			from:     State(model.ApplicationStatusPending),
			event:    EventReject,
			expected: State(model.ApplicationStatusRejected),
		},
		{
			name:     "create intern from approved",
			from:     State(model.ApplicationStatusApproved),
			event:    EventCreateIntern,
			expected: State(model.ApplicationStatusInternCreated),
		},
		{
			name:    "approve already approved",
			from:    State(model.ApplicationStatusApproved),
			event:   EventApprove,
			wantErr: true,
		},
		{
			name:    "reject already rejected",
			from:    State(model.ApplicationStatusRejected),
			event:   EventReject,
			wantErr: true,
		},
		{
			name:    "create intern from pending",
			from:    State(model.ApplicationStatusPending),
			event:   EventCreateIntern,
			wantErr: true,
		},
		{
			name:    "create intern twice",
			from:    State(model.ApplicationStatusInternCreated),
			event:   EventCreateIntern,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := ApplicationMachine.Next(tt.from, tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsPrecondition(err))
				assert.Empty(t, next)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, next)
			}
		})
	}
}

func TestApplicationMachine_Terminals(t *testing.T) {
	assert.True(t, ApplicationMachine.IsTerminal(State(model.ApplicationStatusRejected)))
	assert.True(t, ApplicationMachine.IsTerminal(State(model.ApplicationStatusInternCreated)))
	assert.False(t, ApplicationMachine.IsTerminal(State(model.ApplicationStatusPending)))
	assert.False(t, ApplicationMachine.IsTerminal(State(model.ApplicationStatusApproved)))
}

func TestReportMachine_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     State
		event    Event
		expected State
		wantErr  bool
	}{
		{
			name:     "submit draft",
			from:     State(model.ReportStatusDraft),
			event:    EventSubmit,
			expected: State(model.ReportStatusSubmitted),
		},
		{
			name:     "start review on submitted",
			from:     State(model.ReportStatusSubmitted),
			event:    EventStartReview,
			expected: State(model.ReportStatusUnderReview),
		},
		{
			name:     "complete review directly from submitted",
			from:     State(model.ReportStatusSubmitted),
			event:    EventCompleteReview,
			expected: State(model.ReportStatusReviewed),
		},
		{
			name:     "complete review from under review",
			from:     State(model.ReportStatusUnderReview),
			event:    EventCompleteReview,
			expected: State(model.ReportStatusReviewed),
		},
		{
			name:     "request revision from submitted",
			from:     State(model.ReportStatusSubmitted),
			event:    EventRequestRevision,
			expected: State(model.ReportStatusNeedsRevision),
		},
		{
			name:     "request revision from under review",
			from:     State(model.ReportStatusUnderReview),
			event:    EventRequestRevision,
			expected: State(model.ReportStatusNeedsRevision),
		},
		{
			name:     "resubmit after revision",
			from:     State(model.ReportStatusNeedsRevision),
			event:    EventSubmit,
			expected: State(model.ReportStatusSubmitted),
		},
		{
			name:    "double submit",
			from:    State(model.ReportStatusSubmitted),
			event:   EventSubmit,
			wantErr: true,
		},
		{
			name:    "review a draft",
			from:    State(model.ReportStatusDraft),
			event:   EventCompleteReview,
			wantErr: true,
		},
		{
			name:    "review a reviewed report",
			from:    State(model.ReportStatusReviewed),
			event:   EventCompleteReview,
			wantErr: true,
		},
		{
			name:    "revision on reviewed report",
			from:    State(model.ReportStatusReviewed),
			event:   EventRequestRevision,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := ReportMachine.Next(tt.from, tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsPrecondition(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, next)
			}
		})
	}
}

func TestReportMachine_RevisionLoop(t *testing.T) {
	// draft -> submitted -> needs_revision -> submitted -> reviewed
	state := State(model.ReportStatusDraft)
	for _, event := range []Event{EventSubmit, EventRequestRevision, EventSubmit, EventCompleteReview} {
		next, err := ReportMachine.Next(state, event)
		assert.NoError(t, err)
		state = next
	}
	assert.Equal(t, State(model.ReportStatusReviewed), state)
	assert.True(t, ReportMachine.IsTerminal(state))
}

func TestMachine_Can(t *testing.T) {
	assert.True(t, ReportMachine.Can(State(model.ReportStatusDraft), EventSubmit))
	assert.False(t, ReportMachine.Can(State(model.ReportStatusDraft), EventStartReview))
	assert.False(t, ReportMachine.Can(State("bogus"), EventSubmit))
}
