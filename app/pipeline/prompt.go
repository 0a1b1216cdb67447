package pipeline

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jobnest/jobnest/app/store"
)

//go:embed data/*.tmpl
var templatesFS embed.FS

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
	"seq": func(n int) []int {
		res := make([]int, n)
		for i := range res {
			res[i] = i + 1
		}
		return res
	},
}).ParseFS(templatesFS, "data/*.tmpl"))

// LearnPrompt builds a prompt asking for books to learn the skill.
func LearnPrompt(skill string) (string, error) {
	return execute("learn.tmpl", struct {
		Skill string
		Label string
		Count int
	}{Skill: skill, Label: LabelBooks, Count: BooksCount})
}

// ResumePrompt builds a prompt asking for a review of the resume text.
func ResumePrompt(text string) (string, error) {
	return execute("resume.tmpl", struct {
		Sections []Section
		Text     string
	}{Sections: ResumeSections, Text: text})
}

// TechTalksPrompt builds a prompt asking to pick technology and jobs
// related articles from the list.
func TechTalksPrompt(articles []store.Article) (string, error) {
	return execute("techtalks.tmpl", struct {
		Articles []store.Article
	}{Articles: articles})
}

func execute(name string, data any) (string, error) {
	sb := &strings.Builder{}
	if err := prompts.ExecuteTemplate(sb, name, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", name, err)
	}
	return sb.String(), nil
}
