package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jobnest/jobnest/app/store"
	"golang.org/x/exp/slog"
)

// Analyze is a command to analyze the resume.
type Analyze struct {
	PipelineOpts
	File string `long:"file" description:"resume image, PNG or JPEG"`
	Text string `long:"text" description:"resume text, used if no file is given"`
}

// Execute runs the command.
func (a Analyze) Execute(_ []string) error {
	ctx := context.Background()

	svc, err := a.build(ctx, slog.Default())
	if err != nil {
		return fmt.Errorf("make pipeline: %w", err)
	}

	var analysis store.ResumeAnalysis
	if a.File != "" {
		data, rErr := os.ReadFile(a.File)
		if rErr != nil {
			return fmt.Errorf("read resume file: %w", rErr)
		}

		analysis, err = svc.AnalyzeResume(ctx, store.Image{Name: filepath.Base(a.File), Data: data})
	} else {
		analysis, err = svc.AnalyzeResumeText(ctx, a.Text)
	}

	if err != nil {
		return report(os.Stderr, fmt.Errorf("analyze resume: %w", err))
	}

	renderAnalysis(os.Stdout, analysis)
	return nil
}
