package article

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/fsmkit"
	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/binder"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

type createRequest struct {
	CreatePayload
}

type showRequest struct {
	ID string `path:"id"`
}

// Service serves the article endpoints that are not transitions.
type Service struct {
	store  store.Store[*Article]
	now    func() time.Time
	closed atomic.Bool
}

// NewService returns a service that accepts new drafts.
func NewService(st store.Store[*Article], now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, now: now}
}

// AcceptDrafts opens or closes the create endpoint. Existing articles keep
// moving through their transitions either way.
func (s *Service) AcceptDrafts(open bool) {
	s.closed.Store(!open)
}

// acceptingDrafts refuses creation with 403 while drafts are closed.
func (s *Service) acceptingDrafts(next handler.HandlerFunc[handler.Context, createRequest]) handler.HandlerFunc[handler.Context, createRequest] {
	return func(ctx handler.Context, req createRequest) handler.Response {
		if s.closed.Load() {
			return handler.Fail(fmt.Errorf("%w: new drafts are closed", handler.ErrForbidden))
		}
		return next(ctx, req)
	}
}

// create stores a new draft article.
func (s *Service) create(ctx handler.Context, req createRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(err)
	}

	a := New(uuid.NewString(), req.Title, req.Body, s.now().UTC())
	if err := s.store.Save(ctx, a); err != nil {
		return handler.Fail(fmt.Errorf("save article: %w", err))
	}

	view, _ := represent(ctx, a)
	return handler.JSON(view, handler.WithJSONStatus(http.StatusCreated))
}

func (s *Service) show(ctx handler.Context, req showRequest) handler.Response {
	if err := uuid.Validate(req.ID); err != nil {
		verr := handler.NewValidationError()
		verr.Add("id", "must be a UUID")
		return handler.Fail(verr)
	}

	a, err := s.store.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(fmt.Errorf("%w: article %q", handler.ErrNotFound, req.ID))
		}
		return handler.Fail(err)
	}
	view, _ := represent(ctx, a)
	return handler.JSON(view)
}

// Routes mounts the article endpoints, transitions included, under
// "/articles".
func Routes(r chi.Router, svc *Service, reg *fsmkit.Registry[*Article], eh handler.ErrorHandler[handler.Context]) {
	r.Route("/"+Resource, func(r chi.Router) {
		r.Post("/", handler.Wrap(svc.create,
			handler.WithBinder[handler.Context, createRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, createRequest](eh),
			handler.WithDecorators[handler.Context, createRequest](svc.acceptingDrafts),
		))
		r.Get("/{id}", handler.Wrap(svc.show,
			handler.WithBinder[handler.Context, showRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, showRequest](eh),
		))
		reg.RegisterRoutes(r)
	})
}
