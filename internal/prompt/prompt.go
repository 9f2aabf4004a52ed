package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed templates/analyze.txt
	analyzeTemplate string
	//go:embed templates/response_format.txt
	responseFormat string
)

// Input captures the extraction context for one instruction build.
type Input struct {
	JobTitle       string
	JobDescription string
	ResumeText     string
}

// BuildInstructions renders the analysis instruction for the completion
// service. It is pure and deterministic: identical inputs yield identical
// output. The required response shape is embedded verbatim so the service's
// unstructured reply can be parsed back into a Feedback value. An absent job
// description degrades to role-only guidance.
func BuildInstructions(in Input) string {
	jobTitle := strings.TrimSpace(in.JobTitle)
	if jobTitle == "" {
		jobTitle = "not provided"
	}
	jobDescription := strings.TrimSpace(in.JobDescription)
	if jobDescription == "" {
		jobDescription = "not provided"
	}

	replacer := strings.NewReplacer(
		"{{JOB_TITLE}}", jobTitle,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{RESPONSE_FORMAT}}", strings.TrimSpace(responseFormat),
		"{{RESUME_TEXT}}", in.ResumeText,
	)
	return replacer.Replace(analyzeTemplate)
}

// ResponseFormat returns the literal output shape embedded in instructions.
func ResponseFormat() string {
	return strings.TrimSpace(responseFormat)
}
