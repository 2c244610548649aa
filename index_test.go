package fsmkit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit"
)

func TestTransitionIndex(t *testing.T) {
	t.Parallel()

	get := func(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("lists transitions available from current state", func(t *testing.T) {
		t.Parallel()
		st := newStore(t, &doc{ID: "a1", Status: "in_review", Review: "unassigned"})
		reg := fsmkit.MustNew("articles", st, defaultSerializer(),
			withStatus(&recorder{}), quiet(),
			withReview(),
			fsmkit.WithAllowedTransitions[*doc]("status", func() []string { return []string{"approve", "reject", "submit"} }),
			fsmkit.WithTransitionIndex[*doc](),
		)

		w := get(t, reg.Handle(), "/a1/transitions")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got map[string]fsmkit.FieldState
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, map[string]fsmkit.FieldState{
			"status": {State: "in_review", Transitions: []string{"approve", "reject"}},
			"review": {State: "unassigned", Transitions: []string{"assign"}},
		}, got)
	})

	t.Run("guarded transitions are excluded", func(t *testing.T) {
		t.Parallel()
		reg := fsmkit.MustNew("articles", newStore(t), defaultSerializer(), withStatus(&recorder{}), quiet())

		got := reg.Available(context.Background(), &doc{Status: "published"})
		assert.Equal(t, fsmkit.FieldState{State: "published", Transitions: []string{}}, got["status"])
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		reg := fsmkit.MustNew("articles", newStore(t), defaultSerializer(), withStatus(&recorder{}), quiet(), fsmkit.WithTransitionIndex[*doc]())

		w := get(t, reg.Handle(), "/missing/transitions")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()
		st := newStore(t, &doc{ID: "a1", Status: "draft"})
		reg := fsmkit.MustNew("articles", st, defaultSerializer(), withStatus(&recorder{}), quiet())

		w := get(t, reg.Handle(), "/a1/transitions")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
