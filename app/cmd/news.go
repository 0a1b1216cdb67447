package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
)

// News is a command to show the tech talks.
type News struct {
	PipelineOpts
}

// Execute runs the command.
func (n News) Execute(_ []string) error {
	ctx := context.Background()

	svc, err := n.build(ctx, slog.Default())
	if err != nil {
		return fmt.Errorf("make pipeline: %w", err)
	}

	articles, err := svc.TechTalks(ctx)
	if err != nil {
		return report(os.Stderr, fmt.Errorf("get tech talks: %w", err))
	}

	renderArticles(os.Stdout, articles)
	return nil
}
