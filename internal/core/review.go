package core

// Severity grades an issue found in a review.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a single problem reported against the submitted code.
// Line is 1-based; zero means the issue is not tied to a line.
type Issue struct {
	Line     int      `json:"line,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Review is the parsed form of a review document. Markdown is the canonical
// payload exchanged with the backend; the remaining fields are derived from it.
type Review struct {
	Markdown    string   `json:"markdown"`
	Score       *int     `json:"score,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Issues      []Issue  `json:"issues"`
	Positives   []string `json:"positives,omitempty"`
	Structure   string   `json:"structure,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// ReviewRequest is the JSON body accepted by the get-review endpoint.
type ReviewRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language,omitempty"`
}

// ErrorResponse is the JSON body returned by the backend on failure.
type ErrorResponse struct {
	Message string `json:"message"`
}
