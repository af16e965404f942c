package pdd

import (
	"time"

	"github.com/alnah/go-pdd/internal/pipeline"
	"github.com/alnah/go-pdd/internal/transport"
)

// Request describes the process a document is generated for.
type Request struct {
	Title            string   `json:"title"`
	ProblemStatement string   `json:"problemStatement"`
	Objectives       []string `json:"objectives"`
	Requirements     []string `json:"requirements"`
	ManualSteps      []string `json:"manualSteps"`
	AutomationIdeas  string   `json:"automationIdeas"`
}

// Validate checks the title and list presence rules.
// A nil slice counts as an absent list; an empty slice is valid.
func (r *Request) Validate() error {
	if r == nil || r.Title == "" {
		return invalidInput(ErrTitleRequired)
	}
	if r.Objectives == nil || r.Requirements == nil || r.ManualSteps == nil {
		return invalidInput(ErrListsRequired)
	}
	return nil
}

func (r *Request) fields() pipeline.Fields {
	return pipeline.Fields{
		Title:            r.Title,
		ProblemStatement: r.ProblemStatement,
		Objectives:       r.Objectives,
		Requirements:     r.Requirements,
		ManualSteps:      r.ManualSteps,
		AutomationIdeas:  r.AutomationIdeas,
	}
}

// Result holds a generated document.
type Result struct {
	FileName  string
	Document  []byte
	CreatedAt time.Time
}

// Response is the JSON body returned by the generation endpoint.
type Response struct {
	FileName   string `json:"fileName"`
	FileBase64 string `json:"fileBase64"`
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Response encodes the document for JSON transport.
func (r *Result) Response() Response {
	return Response{
		FileName:   r.FileName,
		FileBase64: transport.Encode(r.Document),
	}
}

// fileNameLayout is ISO-8601 with ':' replaced by '-' and no fraction or zone.
const fileNameLayout = "2006-01-02T15-04-05"

// FileName derives the document file name from the generation instant.
// The time is converted to UTC.
func FileName(t time.Time) string {
	return "document-" + t.UTC().Format(fileNameLayout) + ".docx"
}

// ExampleRequest returns the sample payload used by the demo page.
func ExampleRequest() Request {
	return Request{
		Title:            "Automation Project Proposal",
		ProblemStatement: "Our current process requires manual data entry from multiple sources, which is time-consuming and error-prone.",
		Objectives: []string{
			"Reduce manual data entry by 80%",
			"Improve data accuracy and consistency",
			"Free up team members for higher-value tasks",
		},
		Requirements: []string{
			"Integration with existing CRM system",
			"Real-time data synchronization",
			"Error logging and notification system",
		},
		ManualSteps: []string{
			"Extract data from source system",
			"Validate data format and completeness",
			"Enter data into destination system",
			"Verify entries and reconcile discrepancies",
		},
		AutomationIdeas: "Use Power Automate to automatically pull data from source systems, validate using business rules, and sync to destination platforms. Implement exception handling for edge cases.",
	}
}
