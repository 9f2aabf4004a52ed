package resumes

// Stage identifies one step of the analysis pipeline. A run moves through
// the stages strictly in order; there is no retry, a failed step ends the
// run where it stood.
type Stage string

const (
	StageIdle             Stage = "idle"
	StageUploading        Stage = "uploading-document"
	StageConverting       Stage = "converting"
	StageExtracting       Stage = "extracting-text"
	StageUploadingPreview Stage = "uploading-preview"
	StageCreatingRecord   Stage = "creating-record"
	StageAnalyzing        Stage = "analyzing"
	StageParsingFeedback  Stage = "parsing-feedback"
	StagePersisting       Stage = "persisting-feedback"
	StageComplete         Stage = "complete"
)

var statusText = map[Stage]string{
	StageIdle:             "Idle",
	StageUploading:        "Uploading resume...",
	StageConverting:       "Converting to image...",
	StageExtracting:       "Extracting text...",
	StageUploadingPreview: "Uploading preview...",
	StageCreatingRecord:   "Preparing data...",
	StageAnalyzing:        "Analyzing...",
	StageParsingFeedback:  "Reading feedback...",
	StagePersisting:       "Saving feedback...",
	StageComplete:         "Analysis complete",
}

// StatusText returns the human-readable progress line for a stage.
func StatusText(s Stage) string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return string(s)
}
