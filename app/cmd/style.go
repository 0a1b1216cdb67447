package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jobnest/jobnest/app/pipeline"
	"github.com/jobnest/jobnest/app/store"
)

var (
	accentColor = lipgloss.Color("#2DA44E")
	dimColor    = lipgloss.Color("#6E7681")
	linkColor   = lipgloss.Color("#58A6FF")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0969DA")).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8250DF")).Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(linkColor).Underline(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dimColor)
	ratingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F778BA")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CF222E")).Bold(true)
	textStyle    = lipgloss.NewStyle().Width(80)
)

func renderBooks(w io.Writer, skill string, books []store.Book) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("Books to learn "+skill))
	if len(books) == 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render("No books found."))
		return
	}

	for i, b := range books {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, b.Title)
		if b.Link != "" {
			_, _ = fmt.Fprintf(w, "   %s\n", linkStyle.Render(b.Link))
		}
	}
}

func renderAnalysis(w io.Writer, a store.ResumeAnalysis) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("Resume analysis"))

	_, _ = fmt.Fprintln(w, sectionStyle.Render("Summary"))
	_, _ = fmt.Fprintln(w, textStyle.Render(a.Summary))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, sectionStyle.Render("Rating")+" "+ratingStyle.Render(a.Rating))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, sectionStyle.Render("Key points"))
	for _, kp := range a.KeyPoints {
		_, _ = fmt.Fprintln(w, textStyle.Render("- "+kp))
	}

	if len(a.Degraded) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, dimStyle.Render("Could not parse: "+strings.Join(a.Degraded, ", ")))
	}
}

func renderArticles(w io.Writer, articles []store.Article) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("Tech talks"))
	if len(articles) == 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render("No tech talks for now."))
		return
	}

	for _, a := range articles {
		_, _ = fmt.Fprintln(w, sectionStyle.Render(a.Title))
		_, _ = fmt.Fprintln(w, linkStyle.Render(a.URL))
		if a.Description != "" {
			_, _ = fmt.Fprintln(w, textStyle.Render(a.Description))
		}
		_, _ = fmt.Fprintln(w)
	}
}

// report prints the message of the pipeline error for the user
// and returns the error as is.
func report(w io.Writer, err error) error {
	var (
		verr *pipeline.ValidationError
		eerr *pipeline.ExternalCallError
	)

	switch {
	case errors.As(err, &verr):
		_, _ = fmt.Fprintln(w, errorStyle.Render(verr.Msg))
	case errors.As(err, &eerr):
		_, _ = fmt.Fprintln(w, errorStyle.Render(eerr.Msg))
	}

	return err
}
