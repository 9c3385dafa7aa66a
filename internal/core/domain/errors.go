package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidContent indicates structured content violates its invariants.
	ErrInvalidContent = errors.New("invalid content")

	// Session Errors.

	// ErrNoSession indicates no user identity is stored locally.
	// Every data-mutating operation is blocked until one is set.
	ErrNoSession = errors.New("no user session")

	// ErrEmptyIdea indicates an idea was submitted with no text.
	ErrEmptyIdea = errors.New("idea text is empty")
)

// NoSessionMessage is shown whenever ErrNoSession blocks an operation.
const NoSessionMessage = "User ID not found. Please log in again."

// BackendError is returned when the backend answers with a missing or
// false success flag. Message holds the backend-provided text, if any.
type BackendError struct {
	Op      string
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by backend", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError wraps a network or decoding failure talking to the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Failure holds the user-visible fallback texts for one operation.
type Failure struct {
	// Rejected is shown when the backend refused without a message.
	Rejected string

	// Unreachable is shown for transport failures and anything unexpected.
	Unreachable string
}

// Failure texts for the operations the client performs.
var (
	SavePageFailure     = Failure{"Failed to save page.", "Error while saving the page."}
	UpdatePageFailure   = Failure{"Failed to update page.", "Error while saving the page."}
	DeletePageFailure   = Failure{"Failed to delete page.", "Error while deleting the page."}
	LoadPagesFailure    = Failure{"Failed to load pages.", "Error while loading pages."}
	SaveIdeaFailure     = Failure{"Failed to save idea.", "Error while saving the idea."}
	DeleteIdeaFailure   = Failure{"Failed to delete idea.", "Error while deleting the idea."}
	LoadIdeasFailure    = Failure{"Failed to load ideas.", "Error while loading ideas."}
	SuggestTagsFailure  = Failure{"Failed to fetch hashtags.", "Error while fetching hashtags."}
	CreateTagFailure    = Failure{"Failed to create hashtag.", "Error while creating the hashtag."}
	LoadTagsFailure     = Failure{"Failed to load hashtags.", "Error while loading hashtags."}
	LoadMessagesFailure = Failure{"Failed to load messages.", "Error while loading messages."}
)

// Message converts err into the text shown to the user.
// It returns an empty string for a nil error.
func (f Failure) Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoSession) {
		return NoSessionMessage
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if backendErr.Message != "" {
			return backendErr.Message
		}
		return f.Rejected
	}

	if errors.Is(err, ErrEmptyIdea) {
		return "Please enter an idea."
	}
	return f.Unreachable
}
