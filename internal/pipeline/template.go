package pipeline

// Fixed template text.
const (
	FooterText        = "Created & Managed by Team, for queries write us at ABC@XYZ.COM"
	ProcessLabel      = "Process: TMPY HR"
	ProjectNamePrefix = "Project Name: "
	DateLabel         = "Nov | 2024"
	DocumentTitle     = "Process Definition Document"
	ContentsHeading   = "1 Contents"
	IntroHeading      = "2 INTRODUCTION"

	ProblemStatementHeading = "1. Problem Statement"
	ObjectivesHeading       = "2. Objectives"
	RequirementsHeading     = "3. Requirements"
	ProcessMapHeading       = "4. AS-IS Process Map"
	AutomationIdeasHeading  = "5. Automation Ideas"

	DefaultProblemStatement = "No problem statement provided."
	DefaultAutomationIdeas  = "No automation ideas provided."
)

// Font sizes in half-points.
const (
	sizeFooter      = 18
	sizeMeta        = 20
	sizeTitle       = 28
	sizeTOCHeading  = 22
	sizeTOCEntry    = 20
	sizeIntro       = 26
	sizeSection     = 22
	sizeBody        = 22
	sizeListItem    = 22
	tocIndentUnit   = 400 // twips per depth level
	tocIndentOffset = 1
)

// TOCEntry is one line of the table of contents.
// Depth is the hierarchy level (3 to 5); indentation is (Depth-1) * 400 twips.
type TOCEntry struct {
	Text  string
	Depth int
}

// Indent returns the left indentation of the entry in twips.
func (e TOCEntry) Indent() int {
	return (e.Depth - tocIndentOffset) * tocIndentUnit
}

// TableOfContents lists the fixed table of contents entries in render order.
var TableOfContents = []TOCEntry{
	{"2 INTRODUCTION", 3},
	{"2.1 PURPOSE", 3},
	{"2.2 OBJECTIVE", 3},
	{"2.3 PROCESS KEY CONTACTS", 3},
	{"2.4 DOCUMENT CONTROL", 3},
	{"3 CHANGE REQUESTS", 3},
	{"4 AS IS PROCESS DESCRIPTION", 3},
	{"4.1 PROCESS OVERVIEW", 4},
	{"4.2 RACI MATRIX", 4},
	{"4.3 MINIMUM PRE-REQUISITES FOR THE AUTOMATION", 4},
	{"4.4 APPLICATION USED IN THE PROCESS", 4},
	{"4.5 AS-IS PROCESS MAP", 4},
	{"4.5.1 High Level AS-IS Process Map", 5},
	{"4.5.2 Detailed AS-IS Process Map", 5},
	{"4.6 VOLUMETRIC", 4},
	{"4.7 VOLUME AND HANDLING TIME", 4},
	{"4.8 OPERATING WINDOW & STAFFING SCHEDULE", 4},
	{"4.9 INPUT DATA DETAILS", 4},
	{"5 TO BE PROCESS DESCRIPTION", 3},
	{"5.1 TO BE DETAILED PROCESS MAP", 4},
	{"5.2 PARALLEL INITIATIVES/ AUTOMATION/ DEVELOPMENT", 4},
	{"5.3 IN SCOPE SCENARIOS/CASE TYPES/VOLUME", 4},
	{"5.4 OUT OF SCOPE SCENARIOS/CASE TYPES/VOLUME FOR PROJECT", 4},
	{"5.5 EXCEPTION HANDLING", 4},
	{"5.5.1 Known Business Exception", 5},
	{"5.5.2 Unknown Business Exception", 5},
	{"5.6 APPLICATIONS ERRORS & EXCEPTIONS HANDLING", 4},
	{"5.6.1 Known Applications Errors and Exceptions", 5},
	{"5.6.2 Unknown Applications Errors and Exceptions", 5},
	{"5.7 REPORTING", 4},
	{"6 OTHER", 3},
	{"6.1 APPENDIX & OTHER DOCUMENTS", 4},
}
