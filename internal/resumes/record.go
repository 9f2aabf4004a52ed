package resumes

import (
	"resumind-backend/internal/feedback"
)

// KeyPrefix namespaces resume records in the key-value store.
const KeyPrefix = "resume:"

// Record is the persisted shape of one analysis run. Feedback serializes as
// the empty string until the run reaches the persisting step, so a reader
// can tell a placeholder from a finished record.
type Record struct {
	ID             string            `json:"id"`
	ResumePath     string            `json:"resumePath"`
	ImagePath      string            `json:"imagePath"`
	CompanyName    string            `json:"companyName"`
	JobTitle       string            `json:"jobTitle"`
	JobDescription string            `json:"jobDescription"`
	Feedback       feedback.Optional `json:"feedback"`
}

// Key returns the store key for this record.
func (r Record) Key() string {
	return RecordKey(r.ID)
}

// RecordKey maps a resume id to its store key.
func RecordKey(id string) string {
	return KeyPrefix + id
}
