package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jobnest/jobnest/app/store"
	"github.com/samber/lo"
)

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	jobs, err := s.Store.ListJobs(r.Context(), store.ListJobsRequest{OnlyOpen: !all})
	if err != nil {
		s.respondError(w, r, fmt.Errorf("list jobs: %w", err))
		return
	}

	s.respond(w, r, http.StatusOK, map[string]any{"jobs": cards(jobs)})
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.Store.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, notFound(err, "Job not found."))
		return
	}

	s.respond(w, r, http.StatusOK, card(job))
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	if _, err := s.caller(r, store.RoleRecruiter); err != nil {
		s.respondError(w, r, err)
		return
	}

	var req struct {
		Title       string `json:"title" validate:"required,max=200"`
		Company     string `json:"company" validate:"required,max=200"`
		CompanyLogo string `json:"company_logo" validate:"omitempty,url"`
		Description string `json:"description" validate:"required"`
		Location    string `json:"location" validate:"required"`
		Salary      string `json:"salary"`
		Experience  int    `json:"experience" validate:"min=0,max=50"`
	}

	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	job := store.Job{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		CompanyLogo: req.CompanyLogo,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Experience:  req.Experience,
	}

	if err := s.Store.PutJob(r.Context(), job); err != nil {
		s.respondError(w, r, fmt.Errorf("put job: %w", err))
		return
	}

	job, err := s.Store.GetJob(r.Context(), job.ID)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("get created job: %w", err))
		return
	}

	s.respond(w, r, http.StatusCreated, card(job))
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	u, err := s.caller(r, store.RoleJobseeker)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	app, err := s.Store.Apply(r.Context(), chi.URLParam(r, "id"), u.ID)
	if err != nil {
		s.respondError(w, r, notFound(err, "Job not found."))
		return
	}

	s.respond(w, r, http.StatusCreated, app)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string     `json:"username" validate:"required,max=64"`
		Role     store.Role `json:"role" validate:"required,oneof=jobseeker recruiter"`
		Location string     `json:"location"`
	}

	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	u := store.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Role:     req.Role,
		Location: req.Location,
	}

	if err := s.Store.PutUser(r.Context(), u); err != nil {
		s.respondError(w, r, fmt.Errorf("put user: %w", err))
		return
	}

	s.respond(w, r, http.StatusCreated, u)
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.Store.ListApplications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("list applications: %w", err))
		return
	}

	if apps == nil {
		apps = []store.Application{}
	}

	s.respond(w, r, http.StatusOK, map[string]any{"applications": apps})
}

// caller returns the user identified by the X-User-ID header,
// if the user has the given role.
func (s *Server) caller(r *http.Request, role store.Role) (store.User, error) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		return store.User{}, badRequest("X-User-ID header is required.")
	}

	u, err := s.Store.GetUser(r.Context(), id)
	if err != nil {
		return store.User{}, notFound(err, "User not found.")
	}

	if u.Role != role {
		return store.User{}, &httpError{Status: http.StatusForbidden, Msg: fmt.Sprintf("Only %ss can do this.", role)}
	}

	return u, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &httpError{Status: http.StatusNotFound, Msg: msg}
	}
	return err
}

// jobCard is a job with the fields rendered for the job card.
type jobCard struct {
	store.Job
	ExperienceLabel string `json:"experience_label"`
	Preview         string `json:"preview"`
}

func card(j store.Job) jobCard {
	return jobCard{Job: j, ExperienceLabel: j.ExperienceLabel(), Preview: j.Preview()}
}

func cards(jobs []store.Job) []jobCard {
	return lo.Map(jobs, func(j store.Job, _ int) jobCard { return card(j) })
}
