package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/ideapad/internal/core/codec"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Ensure DocumentSession implements the interface.
var _ driving.DocumentSession = (*DocumentSession)(nil)

// DocumentSession owns the editable state of the open document.
//
// Every mutation issues a persist request right away. Each request carries
// the epoch of the document it was issued for and a sequence number per
// document identifier; Complete only applies the latest request of the
// current epoch. While a create is in flight further edits are held back
// and flushed as a single update once the backend identifier is known.
type DocumentSession struct {
	mu       sync.Mutex
	pages    driven.PageStore
	identity driven.IdentityStore

	// seq holds the last sequence number issued per document identifier.
	// It survives Open so re-opened documents keep counting.
	seq map[string]uint64

	epoch    uint64
	doc      domain.Document
	inFlight int
	creating bool
	pending  bool
	message  string
}

// NewDocumentSession creates a session with no document open.
func NewDocumentSession(pages driven.PageStore, identity driven.IdentityStore) *DocumentSession {
	s := &DocumentSession{
		pages:    pages,
		identity: identity,
		seq:      make(map[string]uint64),
	}
	s.Open(nil)
	return s
}

// Open releases the current document and loads page.
func (s *DocumentSession) Open(page *domain.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.doc = domain.Document{Title: domain.DefaultTitle, Content: domain.EmptyContent()}
	s.inFlight = 0
	s.creating = false
	s.pending = false
	s.message = ""

	if page == nil || page.ID == "" {
		return
	}
	s.doc.ID = page.ID
	s.doc.Title = page.DisplayTitle()
	res := codec.Decode(page.StoredContent)
	if res.Kind == codec.KindEmpty {
		logger.Debug("session: page %q opened with empty content (%s)", page.ID, res.Reason)
	}
	s.doc.Content = res.Content
}

// Document returns a copy of the open document.
func (s *DocumentSession) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.doc
	doc.Content = s.doc.Content.Clone()
	return doc
}

// State returns the lifecycle state.
func (s *DocumentSession) State() driving.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *DocumentSession) state() driving.SessionState {
	switch {
	case s.inFlight > 0 || s.pending:
		return driving.SessionPersisting
	case s.doc.IsNew():
		return driving.SessionEmpty
	default:
		return driving.SessionLoaded
	}
}

// Message returns the retained user-visible error, if any.
func (s *DocumentSession) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// SetTitle updates the title and issues a persist request.
func (s *DocumentSession) SetTitle(title string) *driving.PersistRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Title = title
	return s.issue()
}

// SetContent replaces the content and issues a persist request.
func (s *DocumentSession) SetContent(content domain.StructuredContent) *driving.PersistRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Content = content.Clone()
	return s.issue()
}

// issue builds the persist request for the current document state
// (caller must hold lock). It returns nil when nothing may be sent.
func (s *DocumentSession) issue() *driving.PersistRequest {
	id := currentIdentity(s.identity)
	if id.IsZero() {
		s.message = domain.NoSessionMessage
		return nil
	}
	if s.creating {
		s.pending = true
		return nil
	}

	content, err := codec.Marshal(s.doc.Content)
	if err != nil {
		logger.Error("session: encoding content: %v", err)
		s.message = domain.SavePageFailure.Unreachable
		return nil
	}

	title := strings.TrimSpace(s.doc.Title)
	if title == "" {
		title = domain.DefaultTitle
	}

	key := s.key()
	s.seq[key]++
	req := &driving.PersistRequest{
		Epoch:    s.epoch,
		Key:      key,
		Seq:      s.seq[key],
		Identity: id,
		ID:       s.doc.ID,
		Title:    title,
		Content:  content,
	}
	if req.IsCreate() {
		s.creating = true
	}
	s.inFlight++
	return req
}

// key returns the sequencing key of the open document (caller must hold lock).
func (s *DocumentSession) key() string {
	if s.doc.ID != "" {
		return s.doc.ID
	}
	return "new:" + strconv.FormatUint(s.epoch, 10)
}

// Run performs the create-or-update call for req.
func (s *DocumentSession) Run(ctx context.Context, req driving.PersistRequest) driving.PersistResult {
	res := driving.PersistResult{Request: req}
	if s.pages == nil {
		res.Err = domain.ErrNotImplemented
		return res
	}

	logger.Debug("session: persisting %s seq=%d create=%t", req.Key, req.Seq, req.IsCreate())
	id, err := s.pages.Save(ctx, req.Identity, driven.PageWrite{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		logger.Warn("session: persisting %s seq=%d failed: %v", req.Key, req.Seq, err)
		res.Err = err
		return res
	}
	if id == "" {
		id = req.ID
	}
	res.PageID = id
	return res
}

// Complete applies res if it is the latest request of the open document.
func (s *DocumentSession) Complete(res driving.PersistResult) (*driving.PersistRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := res.Request
	if req.Epoch != s.epoch {
		logger.Debug("session: discarding result for closed document %s seq=%d", req.Key, req.Seq)
		return nil, false
	}
	if s.inFlight > 0 {
		s.inFlight--
	}

	if req.IsCreate() {
		return s.completeCreate(res), true
	}

	if req.Seq != s.seq[req.Key] {
		logger.Debug("session: discarding stale result %s seq=%d latest=%d", req.Key, req.Seq, s.seq[req.Key])
		return nil, false
	}
	if res.Err != nil {
		s.message = domain.UpdatePageFailure.Message(res.Err)
	} else {
		s.message = ""
	}
	return nil, true
}

// Latest reports whether req carries the last sequence number issued for
// its key.
func (s *DocumentSession) Latest(req driving.PersistRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return req.Seq == s.seq[req.Key]
}

// completeCreate adopts the backend identifier and flushes held edits
// (caller must hold lock).
func (s *DocumentSession) completeCreate(res driving.PersistResult) *driving.PersistRequest {
	s.creating = false
	delete(s.seq, res.Request.Key)

	if res.Err != nil || res.PageID == "" {
		if res.Err == nil {
			res.Err = &domain.BackendError{Op: "save page"}
		}
		s.message = domain.SavePageFailure.Message(res.Err)
		s.pending = false
		return nil
	}

	s.doc.ID = res.PageID
	s.message = ""
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.issue()
}
