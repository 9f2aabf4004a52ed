package feedback

// JSON shape produced by the completion service and persisted on the record:
// {
//   "overallScore": 0-100,
//   "ATS":          { "score": 0-100, "tips": [{"type": "good"|"improve", "tip": "..."}] },
//   "toneAndStyle": { "score": 0-100, "tips": [{"type": "good"|"improve", "tip": "...", "explanation": "..."}] },
//   "content":      { same shape as toneAndStyle },
//   "structure":    { same shape as toneAndStyle },
//   "skills":       { same shape as toneAndStyle }
// }

// TipType labels a tip as praise or an improvement suggestion.
type TipType string

const (
	TipGood    TipType = "good"
	TipImprove TipType = "improve"
)

// CategoryTip is one tip inside a scored category. Order is display order,
// most important first.
type CategoryTip struct {
	Type        TipType `json:"type"`
	Tip         string  `json:"tip"`
	Explanation string  `json:"explanation"`
}

// ATSTip is one ATS-compatibility tip. Unlike category tips it carries no
// separate explanation; the tip text is the prose.
type ATSTip struct {
	Type TipType `json:"type"`
	Tip  string  `json:"tip"`
}

// Category is one scored critique dimension.
type Category struct {
	Score int           `json:"score"`
	Tips  []CategoryTip `json:"tips"`
}

// ATSResult is the ATS-compatibility section of the critique.
type ATSResult struct {
	Score int      `json:"score"`
	Tips  []ATSTip `json:"tips"`
}

// Feedback is the full structured critique.
type Feedback struct {
	OverallScore int       `json:"overallScore"`
	ATS          ATSResult `json:"ATS"`
	ToneAndStyle Category  `json:"toneAndStyle"`
	Content      Category  `json:"content"`
	Structure    Category  `json:"structure"`
	Skills       Category  `json:"skills"`
}
