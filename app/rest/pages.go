package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jobnest/jobnest/app/geo"
	"github.com/jobnest/jobnest/app/pipeline"
	"github.com/jobnest/jobnest/app/store"
)

// DefaultMaxUploadSize is the default limit of the uploaded resume size.
const DefaultMaxUploadSize = 10 << 20

func (s *Server) learn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skill string `json:"skill"`
	}

	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	books, err := s.Service.SuggestBooks(r.Context(), req.Skill)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, map[string]any{"books": books})
}

// resume analyzes either the uploaded image in the "file" form field
// or the resume text sent as JSON.
func (s *Server) resume(w http.ResponseWriter, r *http.Request) {
	var (
		analysis store.ResumeAnalysis
		err      error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var img store.Image
		if img, err = s.uploadedImage(w, r); err != nil {
			s.respondError(w, r, err)
			return
		}
		analysis, err = s.Service.AnalyzeResume(r.Context(), img)
	} else {
		var req struct {
			Text string `json:"text"`
		}
		if err = decode(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
		analysis, err = s.Service.AnalyzeResumeText(r.Context(), req.Text)
	}

	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, analysis)
}

func (s *Server) uploadedImage(w http.ResponseWriter, r *http.Request) (store.Image, error) {
	limit := s.MaxUploadSize
	if limit <= 0 {
		limit = DefaultMaxUploadSize
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return store.Image{}, &pipeline.ValidationError{Msg: pipeline.MsgNoResume}
	case err != nil:
		return store.Image{}, badRequest("Failed to read the uploaded file.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return store.Image{}, badRequest("Failed to read the uploaded file.")
	}

	return store.Image{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func (s *Server) techTalks(w http.ResponseWriter, r *http.Request) {
	articles, err := s.Service.TechTalks(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, map[string]any{"articles": articles})
}

// locations returns the places for the location input,
// too short queries get no suggestions.
func (s *Server) locations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) < geo.DefaultMinQueryLen {
		s.respond(w, r, http.StatusOK, map[string]any{"places": []store.Place{}})
		return
	}

	places, err := s.Places.Search(r.Context(), query)
	if err != nil {
		s.respondError(w, r, &pipeline.ExternalCallError{Msg: "Failed to search locations.", Err: err})
		return
	}

	if places == nil {
		places = []store.Place{}
	}

	s.respond(w, r, http.StatusOK, map[string]any{"places": places})
}
