package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"pjuskeby-rumors/internal/digest"
	"pjuskeby-rumors/internal/markdown"
	"pjuskeby-rumors/internal/model"
	"pjuskeby-rumors/internal/storage"
	"pjuskeby-rumors/internal/trending"

	"github.com/gorilla/mux"
)

// rumorView is the read-endpoint projection: the stored record plus its
// live score and hot flag.
type rumorView struct {
	model.Rumor
	Score float64 `json:"score"`
	Hot   bool    `json:"hot"`
}

func (s *Server) view(r model.Rumor, score float64) rumorView {
	return rumorView{Rumor: r, Score: score, Hot: score > s.opts.HotThreshold}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRumors(w http.ResponseWriter, r *http.Request) {
	rumors, err := s.store.ListRumors(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	now := s.opts.Now()
	out := make([]rumorView, 0, len(rumors))
	for _, ws := range trending.SortByTrending(rumors, now) {
		out = append(out, s.view(ws.Rumor, ws.Score))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rumors": out})
}

func (s *Server) handleGetRumor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rumor, err := s.store.GetRumor(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(rumor, trending.Score(rumor, s.opts.Now())))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	rumors, err := s.store.ListRumors(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	n := queryInt(r, "top", s.opts.TopN)
	top := trending.TopTrending(rumors, n, s.opts.Now())
	// Sized from the bounded result, never from the raw query value.
	out := make([]rumorView, 0, len(top))
	for _, ws := range top {
		out = append(out, s.view(ws.Rumor, ws.Score))
	}
	writeJSON(w, http.StatusOK, map[string]any{"trending": out})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	views, err := s.store.IncrementView(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "views": views})
}

type reactRequest struct {
	ReactionType string `json:"reactionType"`
}

func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req reactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	kind := model.Reaction(strings.ToLower(strings.TrimSpace(req.ReactionType)))
	if !kind.Valid() {
		// Rejected before any store access.
		writeStoreError(w, storage.ErrInvalidReaction)
		return
	}
	if _, err := s.store.IncrementReaction(r.Context(), id, kind); err != nil {
		writeStoreError(w, err)
		return
	}
	rumor, err := s.store.GetRumor(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "interactions": rumor.Interactions})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	rumors, err := s.store.ListRumors(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	days := queryInt(r, "days", s.opts.DigestDays)
	topN := queryInt(r, "top", s.opts.TopN)
	writeJSON(w, http.StatusOK, digest.Build(rumors, s.opts.Now(), days, topN))
}

func (s *Server) handleLatestNewsletter(w http.ResponseWriter, r *http.Request) {
	path, ok := s.latestNewsletterPath()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no newsletter generated yet"})
		return
	}
	doc, err := markdown.ParseFile(path)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slug":        doc.Slug(),
		"title":       doc.Title(),
		"frontmatter": doc.Frontmatter,
		"body":        doc.Body,
	})
}

// latestNewsletterPath picks the newest generated file by name; the
// builder's date-stamped names sort chronologically.
func (s *Server) latestNewsletterPath() (string, bool) {
	dir := filepath.Join(s.opts.OutputDir, s.opts.Channel)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), true
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
