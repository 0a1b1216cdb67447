package pipeline

import (
	_ "embed"
	"testing"

	"github.com/jobnest/jobnest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/resume_full.txt
var resumeFull string

//go:embed testdata/resume_no_rating.txt
var resumeNoRating string

//go:embed testdata/books.txt
var booksResponse string

var mlBooks = []string{
	"Hands-On Machine Learning with Scikit-Learn, Keras, and TensorFlow",
	"Pattern Recognition and Machine Learning",
	"The Hundred-Page Machine Learning Book",
	"Deep Learning",
	"Machine Learning Yearning",
}

func TestSplitNumbered(t *testing.T) {
	assert.Equal(t, []string{"Title A", "Title B", "Title C"},
		SplitNumbered("1. Title A\n2. Title B\n3. Title C", 0))

	assert.Equal(t, []string{"Long enough"},
		SplitNumbered("1. Ok\n2. Long enough\n3.  \n", 3))

	assert.Empty(t, SplitNumbered("", 0))
}

func TestParseBooks(t *testing.T) {
	assert.Equal(t, mlBooks, ParseBooks(booksResponse))
	assert.Equal(t, []string{}, ParseBooks("I can't help with that."))
	assert.Equal(t, []string{"Clean Code"}, ParseBooks("**Books:** 1. Clean Code"))
}

func TestParseResumeAnalysis(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want store.ResumeAnalysis
	}{
		{
			name: "all sections",
			raw:  resumeFull,
			want: store.ResumeAnalysis{
				Summary: "Backend engineer with 5 years of Go experience, building high-load payment systems.",
				Rating:  "Good",
				KeyPoints: []string{
					"Designed a payment gateway handling 10k RPS.",
					"Led a team of four engineers.",
					"Maintains open-source Go libraries.",
				},
			},
		},
		{
			name: "missing rating",
			raw:  resumeNoRating,
			want: store.ResumeAnalysis{
				Summary: "Junior frontend developer with a strong portfolio of React projects.",
				Rating:  NotRated,
				KeyPoints: []string{
					"Built a job board from scratch.",
					"Contributes to design systems.",
				},
				Degraded: []string{FieldRating},
			},
		},
		{
			name: "no sections at all",
			raw:  "Sorry, I can't read this resume.",
			want: store.ResumeAnalysis{
				Summary:   NoSummary,
				Rating:    NotRated,
				KeyPoints: []string{NoKeyPoints},
				Degraded:  []string{FieldSummary, FieldKeyPoints, FieldRating},
			},
		},
		{
			name: "sections out of order",
			raw:  "**Rating:** Average\n**Summary:** Data analyst.\n**Key Points:** 1. Knows SQL well",
			want: store.ResumeAnalysis{
				Summary:   "Data analyst.",
				Rating:    "Average",
				KeyPoints: []string{"Knows SQL well"},
			},
		},
		{
			name: "multi-word rating",
			raw:  "**Summary:** Designer.\n**Key Points:** 1. Figma expert\n**Rating:** Good, but could be better",
			want: store.ResumeAnalysis{
				Summary:   "Designer.",
				Rating:    NotRated,
				KeyPoints: []string{"Figma expert"},
				Degraded:  []string{FieldRating},
			},
		},
		{
			name: "decorated rating",
			raw:  "**Summary:** Designer.\n**Key Points:** 1. Figma expert\n**Rating:** **Excellent**.\nGreat job!",
			want: store.ResumeAnalysis{
				Summary:   "Designer.",
				Rating:    "Excellent",
				KeyPoints: []string{"Figma expert"},
			},
		},
		{
			name: "rating outside of vocabulary",
			raw:  "**Summary:** Designer.\n**Key Points:** 1. Figma expert\n**Rating:** Mediocre",
			want: store.ResumeAnalysis{
				Summary:   "Designer.",
				Rating:    NotRated,
				KeyPoints: []string{"Figma expert"},
				Degraded:  []string{FieldRating},
			},
		},
		{
			name: "lowercase rating",
			raw:  "**Summary:** Designer.\n**Key Points:** 1. Figma expert\n**Rating:** average",
			want: store.ResumeAnalysis{
				Summary:   "Designer.",
				Rating:    "Average",
				KeyPoints: []string{"Figma expert"},
			},
		},
		{
			name: "empty summary and short key points",
			raw:  "**Summary:**\n\n**Key Points:** 1. a 2. b\n**Rating:** Poor",
			want: store.ResumeAnalysis{
				Summary:   NoSummary,
				Rating:    "Poor",
				KeyPoints: []string{NoKeyPoints},
				Degraded:  []string{FieldSummary, FieldKeyPoints},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResumeAnalysis(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResumeAnalysis_Panic(t *testing.T) {
	res, err := safeParse("**Summary:** Designer.", func(string) store.ResumeAnalysis {
		panic("unexpected section layout")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected section layout")
	assert.Equal(t, store.ResumeAnalysis{
		Summary:   BrokenSummary,
		Rating:    NotRated,
		KeyPoints: []string{BrokenKeyPoint},
		Degraded:  []string{FieldSummary, FieldKeyPoints, FieldRating},
	}, res)
}
