package article

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/dmitrymomot/fsmkit/pkg/looplab"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// ErrLowScore cancels a sign-off whose score is below MinSignOffScore.
var ErrLowScore = errors.New("score too low to sign off")

// StatusMachine is the publication workflow. Rejected and withdrawn
// articles return to draft.
func StatusMachine() statemachine.StateMachine {
	return statemachine.NewBuilder(StatusDraft).
		Permit(Submit, StatusInReview, StatusDraft).
		Permit(Approve, StatusApproved, StatusInReview).
		Permit(Reject, StatusDraft, StatusInReview).
		Permit(Withdraw, StatusDraft, StatusInReview, StatusApproved).
		Permit(Publish, StatusPublished, StatusApproved).
		Permit(Archive, StatusArchived, StatusPublished).Guard(archiveConfirmed).
		MustBuild()
}

func archiveConfirmed(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	p, ok := data.(ArchivePayload)
	return ok && p.Confirm
}

// ReviewMachine is the reviewer workflow on looplab/fsm.
func ReviewMachine() *looplab.Machine {
	return looplab.New(
		fsm.Events{
			{Name: Assign, Src: []string{ReviewUnassigned, ReviewChangesRequested}, Dst: ReviewAssigned},
			{Name: RequestChanges, Src: []string{ReviewAssigned}, Dst: ReviewChangesRequested},
			{Name: SignOff, Src: []string{ReviewAssigned}, Dst: ReviewSignedOff},
		},
		fsm.Callbacks{
			"before_" + SignOff: func(_ context.Context, e *fsm.Event) {
				p, ok := looplab.Payload[SignOffPayload](e)
				if !ok || p.Score < MinSignOffScore {
					e.Cancel(ErrLowScore)
				}
			},
		},
	)
}
