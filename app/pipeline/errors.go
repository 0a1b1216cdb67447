package pipeline

import "fmt"

// User-facing messages.
const (
	MsgEmptySkill      = "Please enter a skill."
	MsgSuggestFailed   = "Failed to get suggestions."
	MsgNoResume        = "Please upload a resume image first!"
	MsgEmptyResumeText = "Please provide the resume text."
	MsgInvalidFileType = "Invalid file type! Please upload a PNG or JPG image."
	MsgAnalyzeFailed   = "Failed to analyze resume. Try again later."
	MsgTechTalksFailed = "Failed to load news."
)

// ValidationError is returned when the input is rejected before
// any external call is made.
type ValidationError struct {
	Msg string
}

// Error returns the user-facing message.
func (e *ValidationError) Error() string { return e.Msg }

// ExternalCallError is returned when a third-party service failed.
// Msg is safe to show to the user, Err is the cause.
type ExternalCallError struct {
	Msg string
	Err error
}

// Error returns the message with the cause.
func (e *ExternalCallError) Error() string { return fmt.Sprintf("%s: %v", e.Msg, e.Err) }

// Unwrap returns the cause.
func (e *ExternalCallError) Unwrap() error { return e.Err }
