package workflow

import "internhub/internal/model"

// Application workflow events.
const (
	EventApprove      Event = "approve"
	EventReject       Event = "reject"
	EventCreateIntern Event = "create_intern_account"
)

// ApplicationMachine drives InternshipApplication status transitions:
// pending -> approved -> intern_created, pending -> rejected (terminal).
var ApplicationMachine = NewMachine(
	"application",
	map[State]map[Event]State{
		State(model.ApplicationStatusPending): {
			EventApprove: State(model.ApplicationStatusApproved),
			EventReject:  State(model.ApplicationStatusRejected),
		},
		State(model.ApplicationStatusApproved): {
			EventCreateIntern: State(model.ApplicationStatusInternCreated),
		},
	},
	[]State{
		State(model.ApplicationStatusRejected),
		State(model.ApplicationStatusInternCreated),
	},
)
