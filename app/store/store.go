// Package store contains entities and services to process and contain them.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"
)

var (
	// ErrNotFound is an error that is returned when the requested entity is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyApplied is returned when the user has already applied for the job.
	ErrAlreadyApplied = errors.New("already applied")
	// ErrJobClosed is returned when the user tries to apply for a closed job.
	ErrJobClosed = errors.New("job is closed")
)

// Interface defines methods for store
type Interface interface {
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)

	PutJob(ctx context.Context, j Job) error
	GetJob(ctx context.Context, id string) (Job, error)
	ListJobs(ctx context.Context, req ListJobsRequest) ([]Job, error)

	Apply(ctx context.Context, jobID, userID string) (Application, error)
	ListApplications(ctx context.Context, userID string) ([]Application, error)
}

// ListJobsRequest defines parameters for listing jobs from store.
type ListJobsRequest struct {
	OnlyOpen bool
}

// Role of the user on the job board.
type Role string

// Available roles.
const (
	RoleJobseeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
)

// User is a struct that contains the user's data.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Location string `json:"location,omitempty"`
}

// JobStatus is a status of the job posting.
type JobStatus string

// Available job statuses.
const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

// Job is a single job posting.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	CompanyLogo string    `json:"company_logo,omitempty"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary,omitempty"`
	Experience  int       `json:"experience"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

const previewLen = 62

// ExperienceLabel returns human-readable required experience.
func (j Job) ExperienceLabel() string {
	if j.Experience == 0 {
		return "Fresher"
	}
	return strconv.Itoa(j.Experience) + " Years"
}

// Preview returns a shortened description for job cards.
func (j Job) Preview() string {
	runes := []rune(j.Description)
	if len(runes) > previewLen {
		runes = runes[:previewLen]
	}
	return string(runes) + "..."
}

// Closed returns true if applications for the job are not accepted anymore.
func (j Job) Closed() bool { return j.Status == JobClosed }

// Application is a record of a user applying for a job.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a book suggestion, Link is empty if the catalog has no record of it.
type Book struct {
	Title string `json:"title"`
	Link  string `json:"link,omitempty"`
}

// ResumeAnalysis is a structured review of a resume.
// All fields are always set, Degraded lists the fields that fell back
// to the placeholder values.
type ResumeAnalysis struct {
	Summary   string   `json:"summary"`
	Rating    string   `json:"rating"`
	KeyPoints []string `json:"key_points"`
	Degraded  []string `json:"degraded,omitempty"`
}

// Article is a news article.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Place is a geocoding candidate.
type Place struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Image is an uploaded image, e.g. a scanned resume.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}
