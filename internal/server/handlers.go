package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shellmarks/catalog/internal/action"
	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/linkrouter"
)

// linkRequest is the JSON body for POST /api/links.
type linkRequest struct {
	Href string `json:"href"`
}

// sectionInfo is one entry of GET /api/sections.
type sectionInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	File  string `json:"file"`
	Path  string `json:"path"`
}

// sectionDetail is the response of GET /api/sections/{name}.
type sectionDetail struct {
	sectionInfo
	Content string `json:"content"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	// Render into a buffer so a failure can still produce a 500.
	var buf bytes.Buffer
	stats, err := s.generator.Render(&buf)
	if err != nil {
		s.logger.Error("rendering catalog page", "error", err)
		http.Error(w, "rendering catalog page failed", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("catalog page rendered", "sections", stats.Sections, "menus", stats.Menus)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := s.generator.SearchIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	// A JSON body forces a CORS preflight, so other sites cannot post
	// links with a simple form request.
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, errors.New("content type must be application/json"))
		return
	}
	if origin := r.Header.Get("Origin"); !s.originAllowed(origin) {
		s.logger.Warn("link request from foreign origin refused", "origin", origin)
		writeError(w, http.StatusForbidden, errors.New("origin not allowed"))
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	res, err := s.links.Route(r.Context(), req.Href)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("routing link", "href", req.Href, "error", err)
		}
		writeError(w, status, err)
		return
	}
	s.logger.Info("link routed", "href", req.Href, "kind", res.Kind, "path", res.Path)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.generator.Catalog.Sections()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]sectionInfo, 0, len(sections))
	for _, sec := range sections {
		out = append(out, toInfo(sec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	sec, content, err := s.generator.Catalog.Read(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sectionDetail{sectionInfo: toInfo(sec), Content: string(content)})
}

func toInfo(sec catalog.Section) sectionInfo {
	return sectionInfo{Name: sec.Name, Label: catalog.Label(sec.Name), File: sec.File, Path: sec.Path}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, action.ErrMalformed), errors.Is(err, catalog.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrSectionNotFound), errors.Is(err, catalog.ErrScriptNotFound):
		return http.StatusNotFound
	case errors.Is(err, linkrouter.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
