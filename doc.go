// Package fsmkit exposes the transitions of state-machine fields as HTTP
// endpoints.
//
// A Registry is built for one resource type. Each declared state field
// contributes one POST route per transition its machine declares:
//
//	POST /<resource>/{id}/<field>/<transition>
//
// A request loads the resource from a store.Store, validates the body with
// the serializer resolved for the transition, fires the transition from the
// resource's current state, writes the new state back, saves the resource
// and renders the result.
//
//	reg, err := fsmkit.New("articles", articles,
//		fsmkit.NewJSONSerializer[*Article, fsmkit.NoPayload](nil),
//		fsmkit.WithField("status", statusMachine,
//			func(a *Article) string { return a.Status },
//			func(a *Article, s string) *Article { a.Status = s; return a },
//		),
//		fsmkit.WithTransitionSerializer[*Article]("status", "reject", rejectSerializer),
//		fsmkit.WithFormatter("publish", publishResponse),
//		fsmkit.WithLogger[*Article](log),
//	)
//	if err != nil {
//		return err
//	}
//	reg.Mount(router)
//
// # Serializers
//
// The serializer for a transition is chosen once, at construction:
// a transition serializer wins over a field serializer, which wins over the
// default passed to New. Serializer.Validate stores the decoded payload in
// Input.Payload; the machine receives it as event data, so guards and
// actions can read it.
//
// # Errors
//
// Configuration mistakes are returned by New. At request time, an unknown
// id renders 404, malformed JSON 400, failed validation 422 and a
// transition the current state does not permit 409
// (ErrTransitionNotAllowed). A failed save after a successful transition
// renders 500; the new state is not rolled back.
package fsmkit
