// Package article is the demo resource: an editorial article whose
// publication status and review are both state fields.
package article

import (
	"time"

	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// Resource is the URL prefix and store kind for articles.
const Resource = "articles"

// Status states.
const (
	StatusDraft     = statemachine.StringState("draft")
	StatusInReview  = statemachine.StringState("in_review")
	StatusApproved  = statemachine.StringState("approved")
	StatusPublished = statemachine.StringState("published")
	StatusArchived  = statemachine.StringState("archived")
)

// Status events.
const (
	Submit   = statemachine.StringEvent("submit")
	Approve  = statemachine.StringEvent("approve")
	Reject   = statemachine.StringEvent("reject")
	Withdraw = statemachine.StringEvent("withdraw")
	Publish  = statemachine.StringEvent("publish")
	Archive  = statemachine.StringEvent("archive")
)

// Review states and events, driven by looplab/fsm.
const (
	ReviewUnassigned       = "unassigned"
	ReviewAssigned         = "assigned"
	ReviewChangesRequested = "changes_requested"
	ReviewSignedOff        = "signed_off"

	Assign         = "assign"
	RequestChanges = "request_changes"
	SignOff        = "sign_off"
)

type Article struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	Review       string     `json:"review"`
	Reviewer     string     `json:"reviewer,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
	RejectedFor  string     `json:"rejected_for,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Key is the store key of an article.
func Key(a *Article) string {
	return a.ID
}

// New returns a draft article with an unassigned review.
func New(id, title, body string, now time.Time) *Article {
	return &Article{
		ID:        id,
		Title:     title,
		Body:      body,
		Status:    StatusDraft.Name(),
		Review:    ReviewUnassigned,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
