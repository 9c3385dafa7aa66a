package driving

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// SessionState is the lifecycle state of the open document.
type SessionState int

const (
	// SessionEmpty holds a new, never persisted document.
	SessionEmpty SessionState = iota
	// SessionLoaded holds a persisted document with no request in flight.
	SessionLoaded
	// SessionPersisting has at least one persist request in flight.
	SessionPersisting
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionEmpty:
		return "empty"
	case SessionLoaded:
		return "loaded"
	case SessionPersisting:
		return "persisting"
	default:
		return "unknown"
	}
}

// PersistRequest is one create-or-update issued by a document session.
type PersistRequest struct {
	// Epoch identifies the open document the request belongs to.
	Epoch uint64

	// Key is the document identifier used for sequencing.
	Key string

	// Seq is the request number for Key.
	Seq uint64

	// Identity scopes the backend call.
	Identity domain.Identity

	// ID is empty for a create.
	ID string

	Title   string
	Content string
}

// IsCreate reports whether the request creates a new page.
func (r PersistRequest) IsCreate() bool {
	return r.ID == ""
}

// PersistResult is the outcome of running a PersistRequest.
type PersistResult struct {
	Request PersistRequest

	// PageID is the identifier reported by the backend.
	PageID string

	Err error
}

// DocumentSession owns the editable state of one open document.
// Mutations return the request to run, which the caller executes with
// Run and hands back to Complete.
type DocumentSession interface {
	// Open releases the current document and loads page. A nil page or a
	// page without ID opens a new empty document.
	Open(page *domain.Page)

	// Document returns a copy of the open document.
	Document() domain.Document

	// State returns the lifecycle state.
	State() SessionState

	// Message returns the retained user-visible error, if any.
	Message() string

	// SetTitle updates the title and returns the persist request to run,
	// or nil when nothing may be sent yet.
	SetTitle(title string) *PersistRequest

	// SetContent replaces the content and returns the persist request to
	// run, or nil when nothing may be sent yet.
	SetContent(content domain.StructuredContent) *PersistRequest

	// Run performs the backend call for req. It does not touch session state.
	Run(ctx context.Context, req PersistRequest) PersistResult

	// Complete applies res if it is current and returns a follow-up request
	// for edits made while a create was in flight. applied is false when
	// the result was discarded as stale.
	Complete(res PersistResult) (followUp *PersistRequest, applied bool)

	// Latest reports whether req is the newest request issued for its
	// document identifier, including documents that were closed since.
	Latest(req PersistRequest) bool
}
