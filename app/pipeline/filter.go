package pipeline

import (
	"strings"

	"github.com/jobnest/jobnest/app/store"
	"github.com/samber/lo"
)

// FilterArticles keeps the articles whose exact title is mentioned in
// the generated response. A title that was paraphrased, truncated or
// differs in casing or punctuation is dropped.
func FilterArticles(articles []store.Article, response string) []store.Article {
	return lo.Filter(articles, func(a store.Article, _ int) bool {
		return a.Title != "" && strings.Contains(response, a.Title)
	})
}
