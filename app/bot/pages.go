package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/botx"
)

func (c *Ctrl) learn(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	n, err := c.loading(ctx, req)
	if err != nil {
		return nil, err
	}

	books, err := c.Service.SuggestBooks(ctx, req.Args())
	if c.superseded(ctx, req, n) {
		return nil, nil
	}
	if err != nil {
		return fail(req, err)
	}

	if len(books) == 0 {
		return reply(req, "No books found, try another skill."), nil
	}

	sb := &strings.Builder{}
	_, _ = fmt.Fprintf(sb, "*Books to learn %s:*\n", escapeMarkdown(req.Args()))
	for i, b := range books {
		if b.Link == "" {
			_, _ = fmt.Fprintf(sb, "%d. %s\n", i+1, escapeMarkdown(b.Title))
			continue
		}
		_, _ = fmt.Fprintf(sb, "%d. [%s](%s)\n", i+1, escapeMarkdown(b.Title), b.Link)
	}

	return reply(req, sb.String()), nil
}

func (c *Ctrl) resume(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	n, err := c.loading(ctx, req)
	if err != nil {
		return nil, err
	}

	var analysis store.ResumeAnalysis
	if att := req.Attachment; att != nil {
		data, dErr := c.API.DownloadFile(ctx, att.FileID)
		if dErr != nil {
			return nil, fmt.Errorf("download resume: %w", dErr)
		}

		analysis, err = c.Service.AnalyzeResume(ctx, store.Image{
			Name:     att.Name,
			MIMEType: att.MIMEType,
			Data:     data,
		})
	} else {
		analysis, err = c.Service.AnalyzeResumeText(ctx, req.Args())
	}

	if c.superseded(ctx, req, n) {
		return nil, nil
	}
	if err != nil {
		return fail(req, err)
	}

	sb := &strings.Builder{}
	_, _ = fmt.Fprintf(sb, "*Summary*\n%s\n\n", escapeMarkdown(analysis.Summary))
	_, _ = fmt.Fprintf(sb, "*Rating:* %s\n\n", escapeMarkdown(analysis.Rating))
	_, _ = sb.WriteString("*Key points*\n")
	for _, kp := range analysis.KeyPoints {
		_, _ = fmt.Fprintf(sb, "- %s\n", escapeMarkdown(kp))
	}

	return reply(req, sb.String()), nil
}

func (c *Ctrl) news(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	n, err := c.loading(ctx, req)
	if err != nil {
		return nil, err
	}

	articles, err := c.Service.TechTalks(ctx)
	if c.superseded(ctx, req, n) {
		return nil, nil
	}
	if err != nil {
		return fail(req, err)
	}

	if len(articles) == 0 {
		return reply(req, "No tech talks for now, come back later."), nil
	}

	sb := &strings.Builder{}
	_, _ = sb.WriteString("*Tech talks*\n\n")
	for _, a := range articles {
		_, _ = fmt.Fprintf(sb, "[%s](%s)\n", escapeMarkdown(a.Title), a.URL)
		if a.Description != "" {
			_, _ = fmt.Fprintf(sb, "%s\n", escapeMarkdown(a.Description))
		}
		_, _ = sb.WriteString("\n")
	}

	return reply(req, sb.String()), nil
}
