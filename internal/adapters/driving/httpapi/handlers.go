package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// timeLayout is the timestamp format written to clients.
const timeLayout = "2006-01-02 15:04:05"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// respondJSON writes payload with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondOK writes a success envelope merged with fields.
func respondOK(w http.ResponseWriter, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	respondJSON(w, http.StatusOK, payload)
}

// respondFailure writes a failure envelope.
func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}

// respondError maps a store error to a failure envelope.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		respondFailure(w, http.StatusUnauthorized, "User ID is required.")
	case errors.Is(err, domain.ErrEmptyIdea):
		respondFailure(w, http.StatusBadRequest, "Idea text is required.")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFailure(w, http.StatusBadRequest, "Invalid input.")
	case errors.Is(err, domain.ErrNotFound):
		respondFailure(w, http.StatusNotFound, "Not found.")
	default:
		logger.Error("serve: %s failed (id=%s): %v", op, RequestID(r.Context()), err)
		respondFailure(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// decodeBody reads a JSON object body. Form-encoded bodies are accepted too.
func decodeBody(r *http.Request, out any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return err
		}
		values := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			values[k] = r.PostForm.Get(k)
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// wireID writes numeric identifiers as JSON numbers.
func wireID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func wireTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func ideaMap(idea domain.Idea) map[string]any {
	return map[string]any{
		"id":         wireID(idea.ID),
		"idea":       idea.Text,
		"created_at": wireTime(idea.CreatedAt),
	}
}

func ideaMaps(ideas []domain.Idea) []map[string]any {
	out := make([]map[string]any, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, ideaMap(idea))
	}
	return out
}

func identityFrom(r *http.Request) domain.Identity {
	return domain.NewIdentity(r.URL.Query().Get("user_id"))
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// ==================== Ideas ====================

func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.ideas.List(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, r, "list ideas", err)
		return
	}
	respondOK(w, map[string]any{"ideas": ideaMaps(ideas)})
}

func (s *Server) handleCaptureIdea(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message  string     `json:"message"`
		Hashtags string     `json:"hashtags"`
		UserID   flexString `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	idea, err := s.ideas.Create(r.Context(), domain.NewIdentity(string(body.UserID)), body.Message, body.Hashtags)
	if err != nil {
		respondError(w, r, "capture idea", err)
		return
	}
	s.metrics.ideas.Inc()
	respondOK(w, map[string]any{"id": wireID(idea.ID), "idea": ideaMap(*idea)})
}

func (s *Server) handleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID flexString `json:"user_id"`
		ID     flexString `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := s.ideas.Delete(r.Context(), domain.NewIdentity(string(body.UserID)), string(body.ID)); err != nil {
		respondError(w, r, "delete idea", err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) handleIdeasByHashtag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("hashtag")
	if strings.TrimSpace(tag) == "" {
		respondFailure(w, http.StatusBadRequest, "Hashtag is required.")
		return
	}
	ideas, err := s.ideas.ListByHashtag(r.Context(), identityFrom(r), tag)
	if err != nil {
		respondError(w, r, "list ideas by hashtag", err)
		return
	}
	respondOK(w, map[string]any{"ideas": ideaMaps(ideas)})
}

// ==================== Pages ====================

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.pages.List(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, r, "list pages", err)
		return
	}
	out := make([]map[string]any, 0, len(pages))
	for _, p := range pages {
		out = append(out, map[string]any{
			"id":      wireID(p.ID),
			"title":   p.Title,
			"content": p.StoredContent,
		})
	}
	respondOK(w, map[string]any{"pages": out})
}

func (s *Server) handleSavePage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  flexString `json:"user_id"`
		Title   string     `json:"title"`
		Content string     `json:"content"`
		ID      flexString `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	title := strings.TrimSpace(body.Title)
	if title == "" {
		title = domain.DefaultTitle
	}
	id, err := s.pages.Save(r.Context(), domain.NewIdentity(string(body.UserID)), driven.PageWrite{
		ID:      string(body.ID),
		Title:   title,
		Content: body.Content,
	})
	if err != nil {
		respondError(w, r, "save page", err)
		return
	}
	if body.ID == "" {
		s.metrics.pages.Inc()
	}
	respondOK(w, map[string]any{"page_id": wireID(id)})
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID     flexString `json:"id"`
		UserID flexString `json:"user_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := s.pages.Delete(r.Context(), domain.NewIdentity(string(body.UserID)), string(body.ID)); err != nil {
		respondError(w, r, "delete page", err)
		return
	}
	respondOK(w, nil)
}

// ==================== Hashtags ====================

func (s *Server) handleSuggestHashtags(w http.ResponseWriter, r *http.Request) {
	names, err := s.hashtags.Suggest(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, r, "suggest hashtags", err)
		return
	}
	out := make([]map[string]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]string{"hashtag": n})
	}
	respondOK(w, map[string]any{"hashtags": out})
}

func (s *Server) handleCreateHashtag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Hashtag string `json:"hashtag"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := s.hashtags.Create(r.Context(), body.Hashtag); err != nil {
		respondError(w, r, "create hashtag", err)
		return
	}
	respondOK(w, map[string]any{"hashtag": strings.TrimPrefix(strings.TrimSpace(body.Hashtag), "#")})
}

func (s *Server) handleListHashtags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.hashtags.List(r.Context())
	if err != nil {
		respondError(w, r, "list hashtags", err)
		return
	}
	out := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]any{"hashtag": t.Name, "count": t.UsageCount})
	}
	respondOK(w, map[string]any{"messages": out})
}

func (s *Server) handleHashtagMessages(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("hashtag")
	if strings.TrimSpace(tag) == "" {
		respondFailure(w, http.StatusBadRequest, "Hashtag is required.")
		return
	}
	msgs, err := s.hashtags.Messages(r.Context(), tag)
	if err != nil {
		respondError(w, r, "hashtag messages", err)
		return
	}
	out := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]any{
			"id":           wireID(m.ID),
			"content_text": m.Text,
			"created_at":   wireTime(m.CreatedAt),
		})
	}
	respondOK(w, map[string]any{"messages": out})
}

// ==================== Health ====================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
