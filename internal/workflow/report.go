package workflow

import "internhub/internal/model"

// Report workflow events.
const (
	EventSubmit          Event = "submit"
	EventStartReview     Event = "start_review"
	EventCompleteReview  Event = "complete_review"
	EventRequestRevision Event = "request_revision"
)

// ReportMachine drives InternReport status transitions. Completing a review
// and requesting a revision are only legal from submitted or under_review;
// a report sent back for revision re-enters the loop via submit.
var ReportMachine = NewMachine(
	"report",
	map[State]map[Event]State{
		State(model.ReportStatusDraft): {
			EventSubmit: State(model.ReportStatusSubmitted),
		},
		State(model.ReportStatusSubmitted): {
			EventStartReview:     State(model.ReportStatusUnderReview),
			EventCompleteReview:  State(model.ReportStatusReviewed),
			EventRequestRevision: State(model.ReportStatusNeedsRevision),
		},
		State(model.ReportStatusUnderReview): {
			EventCompleteReview:  State(model.ReportStatusReviewed),
			EventRequestRevision: State(model.ReportStatusNeedsRevision),
		},
		State(model.ReportStatusNeedsRevision): {
			EventSubmit: State(model.ReportStatusSubmitted),
		},
	},
	[]State{State(model.ReportStatusReviewed)},
)
