package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jobnest/jobnest/app/store"
	"github.com/samber/lo"
)

var listMarker = regexp.MustCompile(`\d+\.\s+`)

// SplitNumbered splits a numbered list ("1. A 2. B") into its entries.
// Entries are trimmed, the ones not longer than minLen are dropped.
func SplitNumbered(s string, minLen int) []string {
	return lo.Filter(
		lo.Map(listMarker.Split(s, -1), func(entry string, _ int) string { return strings.TrimSpace(entry) }),
		func(entry string, _ int) bool { return len(entry) > minLen },
	)
}

// ParseBooks extracts book titles listed after the books label.
// Only the first line of each entry is kept, the rest is usually
// an author or a description.
func ParseBooks(raw string) []string {
	idx := strings.Index(raw, LabelBooks)
	if idx < 0 {
		return []string{}
	}

	entries := SplitNumbered(raw[idx+len(LabelBooks):], 0)

	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		title, _, _ := strings.Cut(entry, "\n")
		if title = strings.TrimSpace(title); title != "" {
			titles = append(titles, title)
		}
	}

	return titles
}

// minKeyPointLen drops list debris like stray bullets and numbers.
const minKeyPointLen = 3

// ParseResumeAnalysis extracts the resume review sections from the
// generated text. The returned analysis is always complete: missing
// sections take placeholder values and are listed in Degraded.
// Non-nil error means the text could not be processed at all, in this
// case all fields are placeholders and the error is for diagnostics only.
func ParseResumeAnalysis(raw string) (store.ResumeAnalysis, error) {
	return safeParse(raw, parseResumeSections)
}

// safeParse runs the parse func, turning its panic into the record
// with all fields broken.
func safeParse(raw string, parse func(string) store.ResumeAnalysis) (res store.ResumeAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = store.ResumeAnalysis{
				Summary:   BrokenSummary,
				Rating:    NotRated,
				KeyPoints: []string{BrokenKeyPoint},
				Degraded:  []string{FieldSummary, FieldKeyPoints, FieldRating},
			}
			err = fmt.Errorf("parse resume analysis: %v", r)
		}
	}()

	return parse(raw), nil
}

func parseResumeSections(raw string) (res store.ResumeAnalysis) {
	res.Summary = strings.Join(strings.Fields(section(raw, LabelSummary)), " ")
	if res.Summary == "" {
		res.Summary = NoSummary
		res.Degraded = append(res.Degraded, FieldSummary)
	}

	res.KeyPoints = SplitNumbered(section(raw, LabelKeyPoints), minKeyPointLen)
	if len(res.KeyPoints) == 0 {
		res.KeyPoints = []string{NoKeyPoints}
		res.Degraded = append(res.Degraded, FieldKeyPoints)
	}

	res.Rating = parseRating(section(raw, LabelRating))
	if res.Rating == "" {
		res.Rating = NotRated
		res.Degraded = append(res.Degraded, FieldRating)
	}

	return res
}

// section returns the text between the label and the closest label
// of another section that follows it, or the end of the text.
func section(raw, label string) string {
	start := strings.Index(raw, label)
	if start < 0 {
		return ""
	}
	start += len(label)

	end := len(raw)
	for _, s := range ResumeSections {
		if s.Label == label {
			continue
		}
		if idx := strings.Index(raw[start:], s.Label); idx >= 0 && start+idx < end {
			end = start + idx
		}
	}

	return raw[start:end]
}

// parseRating expects a single word from Ratings on the first non-empty
// line, case is ignored.
func parseRating(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")

	words := strings.Fields(strings.Trim(line, "*_ \t.!"))
	if len(words) != 1 {
		return ""
	}

	word := strings.Trim(words[0], "*_.,;:!")
	rating, _ := lo.Find(Ratings, func(r string) bool { return strings.EqualFold(r, word) })
	return rating
}
