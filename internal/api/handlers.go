package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"littlex/internal/core"
	"littlex/internal/dispatch"
)

const maxUploadBytes = 32 << 20

// payload is the decoded request body for walker and assistant endpoints.
// Only the fields the endpoint cares about are read.
type payload struct {
	Content  string   `json:"content"`
	Username string   `json:"username"`
	Media    []string `json:"media"`
	TweetID  string   `json:"tweet_id"`
	Text     string   `json:"text"`
	Language string   `json:"language"`
	Context  string   `json:"context"`
	ImageURL string   `json:"imageUrl"`
}

// decodePayload accepts JSON or form-encoded bodies; an unreadable body
// yields an empty payload, matching the lenient wire behavior clients
// depend on.
func decodePayload(r *http.Request) payload {
	var p payload

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		json.NewDecoder(r.Body).Decode(&p) //nolint:errcheck
		return p
	}

	if err := r.ParseForm(); err != nil {
		return p
	}
	p.Content = r.PostFormValue("content")
	p.Username = r.PostFormValue("username")
	p.TweetID = r.PostFormValue("tweet_id")
	return p
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encoding failed", "error", err)
	}
}

func (s *Server) writeReport(w http.ResponseWriter, report core.Report) {
	s.writeJSON(w, report.Status, report)
}

func (s *Server) createTweet(w http.ResponseWriter, r *http.Request) {
	cmd := dispatch.Command{Name: dispatch.CmdCreateTweet}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			s.writeReport(w, core.Failure(http.StatusBadRequest, "malformed multipart body"))
			return
		}
		cmd.Content = r.FormValue("content")
		cmd.Username = r.FormValue("username")

		for _, header := range r.MultipartForm.File["file"] {
			f, err := header.Open()
			if err != nil {
				s.writeReport(w, core.Failure(http.StatusBadRequest, "unreadable file part"))
				return
			}
			name, err := s.Media.Save(header.Filename, f)
			f.Close()
			if err != nil {
				s.writeReport(w, core.Failure(http.StatusInternalServerError, err.Error()))
				return
			}
			cmd.Media = append(cmd.Media, name)
		}
	} else {
		p := decodePayload(r)
		cmd.Content = p.Content
		cmd.Username = p.Username
		cmd.Media = p.Media
	}

	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), cmd))
}

func (s *Server) loadFeed(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{Name: dispatch.CmdLoadFeed}))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{
		Name:     dispatch.CmdGetProfile,
		Username: p.Username,
	}))
}

func (s *Server) likeTweet(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{
		Name:     dispatch.CmdLikeTweet,
		TweetID:  chi.URLParam(r, "tweet_id"),
		Username: p.Username,
	}))
}

func (s *Server) removeLike(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{
		Name:     dispatch.CmdRemoveLike,
		TweetID:  chi.URLParam(r, "tweet_id"),
		Username: p.Username,
	}))
}

func (s *Server) commentTweet(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{
		Name:     dispatch.CmdCommentTweet,
		TweetID:  chi.URLParam(r, "tweet_id"),
		Username: p.Username,
		Content:  p.Content,
	}))
}

func (s *Server) removeComment(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	s.writeReport(w, s.Dispatcher.Dispatch(r.Context(), dispatch.Command{
		Name:      dispatch.CmdRemoveComment,
		CommentID: chi.URLParam(r, "comment_id"),
		TweetID:   p.TweetID,
	}))
}

// Registration and login are intentionally unsupported, not unfinished:
// there are no accounts in this system.
func (s *Server) registerDisabled(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "Registration is disabled"})
}

func (s *Server) loginDisabled(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "Login is disabled"})
}

func (s *Server) analyzeTweet(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	if p.Content == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No tweet content provided"})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"summary":          s.Assistant.Summarize(r.Context(), p.Content),
		"content_analyzed": p.Content,
	})
}

func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	if p.Text == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
		return
	}

	s.writeJSON(w, http.StatusOK, s.Assistant.Explain(r.Context(), p.Text, p.Language))
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	if p.Context == "" {
		s.writeJSON(w, http.StatusOK, map[string]any{"articles": []core.Article{}})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"articles":         s.Assistant.Recommend(r.Context(), p.Context),
		"context_analyzed": p.Context,
	})
}

func (s *Server) imageInfo(w http.ResponseWriter, r *http.Request) {
	p := decodePayload(r)
	if p.ImageURL == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image URL provided"})
		return
	}

	s.writeJSON(w, http.StatusOK, s.Assistant.ImageInfo(r.Context(), p.ImageURL))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"media_dir": s.Media.Dir(),
	})
}
