// Package looplab lets github.com/looplab/fsm event tables drive resource
// fields next to the in-house statemachine package.
//
//	review := looplab.New(
//		fsm.Events{
//			{Name: "approve", Src: []string{"pending"}, Dst: "approved"},
//			{Name: "request_changes", Src: []string{"pending"}, Dst: "changes_requested"},
//		},
//		fsm.Callbacks{
//			"before_approve": func(ctx context.Context, e *fsm.Event) {
//				if p, ok := looplab.Payload[ApprovePayload](e); ok && p.Score < 3 {
//					e.Cancel(errors.New("score too low"))
//				}
//			},
//		},
//	)
//
// Errors become *statemachine.TransitionError values. An event that is not
// declared for the current state is NotDeclared. A cancelled event is
// Rejected, joined with the reason given to Cancel.
package looplab
