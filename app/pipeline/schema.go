package pipeline

// Section labels the generation service is asked to mark its answers with.
// Both prompts and the parser use them.
const (
	LabelBooks     = "**Books:**"
	LabelSummary   = "**Summary:**"
	LabelKeyPoints = "**Key Points:**"
	LabelRating    = "**Rating:**"
)

// Names of the resume analysis fields, as reported in ResumeAnalysis.Degraded.
const (
	FieldSummary   = "summary"
	FieldKeyPoints = "key_points"
	FieldRating    = "rating"
)

// Placeholders for the fields that could not be extracted.
const (
	NoSummary      = "No summary available."
	NoKeyPoints    = "No key points available."
	NotRated       = "Not Rated"
	BrokenSummary  = "Could not parse summary."
	BrokenKeyPoint = "Parsing failed"
)

// BooksCount is the number of books asked for a skill.
const BooksCount = 5

// Ratings is the vocabulary the resume rating is chosen from.
var Ratings = []string{"Excellent", "Good", "Average", "Poor"}

// Section describes a labeled section of a generated answer.
type Section struct {
	Field       string
	Label       string
	Instruction string
	Choices     []string
}

// ResumeSections lists the resume analysis sections in the order
// they are requested and expected to appear.
var ResumeSections = []Section{
	{
		Field:       FieldSummary,
		Label:       LabelSummary,
		Instruction: "Provide a concise 2-3 sentence summary of the applicant's qualifications",
	},
	{
		Field:       FieldKeyPoints,
		Label:       LabelKeyPoints,
		Instruction: "List 3 notable strengths or achievements from the resume as a numbered list",
	},
	{
		Field:       FieldRating,
		Label:       LabelRating,
		Instruction: "Evaluate the overall resume quality in one word",
		Choices:     Ratings,
	},
}
