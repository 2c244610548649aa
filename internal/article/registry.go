package article

import (
	"context"
	"time"

	"github.com/dmitrymomot/fsmkit"
	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

// View is the response representation of an article.
type View struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Review       string     `json:"review"`
	Reviewer     string     `json:"reviewer,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
	RejectedFor  string     `json:"rejected_for,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func represent(_ context.Context, a *Article) (any, error) {
	return View{
		ID:           a.ID,
		Title:        a.Title,
		Status:       a.Status,
		Review:       a.Review,
		Reviewer:     a.Reviewer,
		RejectReason: a.RejectReason,
		RejectedFor:  a.RejectedFor,
		PublishedAt:  a.PublishedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}

// NewRegistry wires the article fields into a transition registry. now
// stamps UpdatedAt and PublishedAt; pass time.Now outside tests.
func NewRegistry(st store.Store[*Article], now func() time.Time, opts ...fsmkit.Option[*Article]) (*fsmkit.Registry[*Article], error) {
	if now == nil {
		now = time.Now
	}

	setStatus := func(a *Article, s string) *Article {
		t := now().UTC()
		a.Status = s
		a.UpdatedAt = t
		switch s {
		case StatusPublished.Name():
			a.PublishedAt = &t
		case StatusInReview.Name():
			a.RejectReason, a.RejectedFor = "", ""
		}
		return a
	}
	setReview := func(a *Article, s string) *Article {
		a.Review = s
		a.UpdatedAt = now().UTC()
		return a
	}

	reject := fsmkit.NewJSONSerializer[*Article, RejectPayload](represent).
		OnApply(func(_ context.Context, a *Article, p RejectPayload) (*Article, error) {
			a.RejectReason, a.RejectedFor = p.Reason, p.Category
			return a, nil
		})
	assign := fsmkit.NewJSONSerializer[*Article, AssignPayload](represent).
		OnApply(func(_ context.Context, a *Article, p AssignPayload) (*Article, error) {
			a.Reviewer = p.Reviewer
			return a, nil
		})

	base := []fsmkit.Option[*Article]{
		fsmkit.WithField("status", StatusMachine(), func(a *Article) string { return a.Status }, setStatus),
		fsmkit.WithField("review", ReviewMachine(), func(a *Article) string { return a.Review }, setReview),
		fsmkit.WithTransitionSerializer[*Article]("status", Reject.Name(), reject),
		fsmkit.WithTransitionSerializer[*Article]("status", Archive.Name(), fsmkit.NewJSONSerializer[*Article, ArchivePayload](represent)),
		fsmkit.WithTransitionSerializer[*Article]("review", Assign, assign),
		fsmkit.WithTransitionSerializer[*Article]("review", SignOff, fsmkit.NewJSONSerializer[*Article, SignOffPayload](represent)),
		fsmkit.WithFormatter[*Article](Publish.Name(), publishResponse),
	}

	return fsmkit.New(Resource, st, fsmkit.NewJSONSerializer[*Article, fsmkit.NoPayload](represent), append(base, opts...)...)
}

// publishResponse adds the public URL to the published article.
func publishResponse(ctx context.Context, s fsmkit.Serializer[*Article], in *fsmkit.Input[*Article]) (any, error) {
	data, err := s.Represent(ctx, in.Resource)
	if err != nil {
		return nil, err
	}
	return handler.JSON(data, handler.WithJSONMeta(map[string]any{
		"url": "/" + Resource + "/" + in.ID,
	})), nil
}
