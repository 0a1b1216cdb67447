package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
)

// Learn is a command to suggest books to learn the skill.
type Learn struct {
	PipelineOpts
	Skill string `long:"skill" required:"true" description:"skill to learn"`
}

// Execute runs the command.
func (l Learn) Execute(_ []string) error {
	ctx := context.Background()

	svc, err := l.build(ctx, slog.Default())
	if err != nil {
		return fmt.Errorf("make pipeline: %w", err)
	}

	books, err := svc.SuggestBooks(ctx, l.Skill)
	if err != nil {
		return report(os.Stderr, fmt.Errorf("suggest books: %w", err))
	}

	renderBooks(os.Stdout, l.Skill, books)
	return nil
}
