package article

import (
	"github.com/dmitrymomot/fsmkit/pkg/validator"
)

type CreatePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (p CreatePayload) Validate() error {
	return validator.Apply(
		validator.Required("title", p.Title),
		validator.MaxLen("title", p.Title, 200),
		validator.MaxLen("body", p.Body, 20000),
	)
}

// RejectCategories are the accepted values of RejectPayload.Category.
var RejectCategories = []string{"accuracy", "scope", "style", "other"}

// RejectPayload explains a rejection. Category is optional.
type RejectPayload struct {
	Reason   string `json:"reason"`
	Category string `json:"category,omitempty"`
}

func (p RejectPayload) Validate() error {
	rules := []validator.Rule{
		validator.Required("reason", p.Reason),
		validator.MinLen("reason", p.Reason, 3),
		validator.MaxLen("reason", p.Reason, 500),
	}
	rules = append(rules, validator.When(p.Category != "",
		validator.InList("category", p.Category, RejectCategories),
	)...)
	return validator.Apply(rules...)
}

// ArchivePayload must confirm the archive; the machine guard rejects
// unconfirmed requests.
type ArchivePayload struct {
	Confirm bool `json:"confirm"`
}

type AssignPayload struct {
	Reviewer string `json:"reviewer"`
}

func (p AssignPayload) Validate() error {
	return validator.Apply(
		validator.Required("reviewer", p.Reviewer),
		validator.MaxLen("reviewer", p.Reviewer, 100),
	)
}

// SignOffPayload carries the reviewer's score. Scores below MinSignOffScore
// are valid input but cancel the sign-off.
type SignOffPayload struct {
	Score int `json:"score"`
}

const MinSignOffScore = 3

func (p SignOffPayload) Validate() error {
	return validator.Apply(validator.Between("score", p.Score, 1, 5))
}
