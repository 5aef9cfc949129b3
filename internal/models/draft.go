package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus is the lifecycle state of a meal draft.
type DraftStatus string

const (
	// StatusPending is the initial state; only the generation worker may
	// leave it.
	StatusPending DraftStatus = "pending"
	// StatusComplete means generation (or an edit) finished and Meal is set.
	StatusComplete DraftStatus = "complete"
	// StatusError means generation or an edit failed; Error holds the reason.
	StatusError DraftStatus = "error"
	// StatusPendingEdit is set synchronously by an edit request; the worker
	// resolves it back to complete or error.
	StatusPendingEdit DraftStatus = "pending_edit"
)

// Draft is a transient, cache-resident work item representing an in-progress
// or recently-resolved meal-generation request.
//
// Invariant: Meal and Error are never both non-empty.
type Draft struct {
	ID            uuid.UUID   `json:"id"`
	UserID        string      `json:"uid"`
	OriginalInput string      `json:"originalInput"`
	Status        DraftStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	Meal          *Meal       `json:"meal,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Editable reports whether the draft may accept component edits. Drafts
// mid-generation are never editable.
func (d *Draft) Editable() bool {
	return d.Status == StatusComplete || d.Status == StatusError
}

// DraftPage is one page of a user's drafts, newest first. Next is the id of
// the last returned draft, or empty when there is no further page.
type DraftPage struct {
	Drafts []Draft `json:"drafts"`
	Next   string  `json:"next,omitempty"`
}

// Event types delivered to live subscribers.
const (
	EventDraftUpdated = "draft.updated"
	EventDraftDeleted = "draft.deleted"
)

// DraftEvent is pushed to all of an owner's live subscribers whenever one of
// their drafts changes state. It carries the full snapshot so clients do not
// need a follow-up fetch.
type DraftEvent struct {
	Type  string `json:"type"`
	Draft *Draft `json:"draft"`
}
