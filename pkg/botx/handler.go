package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps the handler.
type Middleware func(Handler) Handler

// Response is a response from handler.
type Response struct {
	ReplyToMessageID string
	ChatID           string
	Text             string
}

// Request is a request for handler.
type Request struct {
	MessageID  string
	Chat       Chat
	Text       string
	Attachment *Attachment
}

// Command returns the command of the request without the bot mention,
// e.g. "/learn" for "/learn@jobnest_bot Go".
func (r Request) Command() string {
	cmd, _ := r.split()
	return cmd
}

// Args returns the text after the command.
func (r Request) Args() string {
	_, args := r.split()
	return args
}

func (r Request) split() (cmd, args string) {
	text := strings.TrimSpace(r.Text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	cmd = text
	if idx := strings.IndexAny(text, " \n\t"); idx >= 0 {
		cmd, args = text[:idx], strings.TrimSpace(text[idx:])
	}

	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd, args
}

// Attachment is a file sent along with the message.
type Attachment struct {
	FileID   string
	Name     string
	MIMEType string
	Size     int
}

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
