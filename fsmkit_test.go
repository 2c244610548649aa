package fsmkit_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit"
	"github.com/dmitrymomot/fsmkit/handler"
	"github.com/dmitrymomot/fsmkit/pkg/looplab"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
	"github.com/dmitrymomot/fsmkit/pkg/store"
	"github.com/dmitrymomot/fsmkit/pkg/validator"
)

type doc struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Review string `json:"review"`
	Note   string `json:"note,omitempty"`
}

type rejectPayload struct {
	Reason string `json:"reason"`
}

func (p rejectPayload) Validate() error {
	return validator.Apply(
		validator.Required("reason", p.Reason),
		validator.MaxLen("reason", p.Reason, 200),
	)
}

// recorder captures what the machine actions saw.
type recorder struct {
	mu    sync.Mutex
	calls []string
	data  []any
}

func (r *recorder) action(_ context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, from.Name()+">"+event.Name()+">"+to.Name())
	r.data = append(r.data, data)
	return nil
}

func (r *recorder) snapshot() ([]string, []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...), append([]any(nil), r.data...)
}

// statusMachine declares submit, approve, reject, withdraw and a
// permanently guarded archive.
func statusMachine(rec *recorder) statemachine.StateMachine {
	act := statemachine.WithAction(rec.action)
	return statemachine.MustNew(statemachine.StringState("draft"),
		statemachine.WithTransition(statemachine.StringState("draft"), statemachine.StringState("in_review"), statemachine.StringEvent("submit"), act),
		statemachine.WithTransition(statemachine.StringState("in_review"), statemachine.StringState("published"), statemachine.StringEvent("approve"), act),
		statemachine.WithTransition(statemachine.StringState("in_review"), statemachine.StringState("draft"), statemachine.StringEvent("reject"), act),
		statemachine.WithTransition(statemachine.StringState("in_review"), statemachine.StringState("draft"), statemachine.StringEvent("withdraw"), act),
		statemachine.WithTransition(statemachine.StringState("published"), statemachine.StringState("archived"), statemachine.StringEvent("archive"),
			statemachine.WithGuard(func(context.Context, statemachine.State, statemachine.Event, any) bool { return false }),
		),
	)
}

// reviewMachine runs on looplab/fsm and shares the "submit" name with status.
func reviewMachine() *looplab.Machine {
	return looplab.New(fsm.Events{
		{Name: "assign", Src: []string{"unassigned"}, Dst: "assigned"},
		{Name: "submit", Src: []string{"assigned"}, Dst: "submitted"},
	}, nil)
}

func withStatus(rec *recorder) fsmkit.Option[*doc] {
	return fsmkit.WithField("status", statusMachine(rec),
		func(d *doc) string { return d.Status },
		func(d *doc, s string) *doc { d.Status = s; return d },
	)
}

func withReview() fsmkit.Option[*doc] {
	return fsmkit.WithField("review", reviewMachine(),
		func(d *doc) string { return d.Review },
		func(d *doc, s string) *doc { d.Review = s; return d },
	)
}

func quiet() fsmkit.Option[*doc] {
	return fsmkit.WithLogger[*doc](slog.New(slog.DiscardHandler))
}

func defaultSerializer() fsmkit.Serializer[*doc] {
	return fsmkit.NewJSONSerializer[*doc, fsmkit.NoPayload](nil)
}

// countingStore counts saves and can be told to fail them.
type countingStore struct {
	store.Store[*doc]
	saves   atomic.Int32
	saveErr error
}

func (s *countingStore) Save(ctx context.Context, d *doc) error {
	s.saves.Add(1)
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Store.Save(ctx, d)
}

func newStore(t *testing.T, docs ...*doc) *countingStore {
	t.Helper()
	mem := store.NewMemory(func(d *doc) string { return d.ID })
	for _, d := range docs {
		require.NoError(t, mem.Save(context.Background(), d))
	}
	return &countingStore{Store: mem}
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage      `json:"data"`
	Meta  map[string]any       `json:"meta"`
	Error *handler.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeDoc(t *testing.T, w *httptest.ResponseRecorder) doc {
	t.Helper()
	var d doc
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &d))
	return d
}

func stored(t *testing.T, s store.Store[*doc], id string) *doc {
	t.Helper()
	d, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	return d
}
