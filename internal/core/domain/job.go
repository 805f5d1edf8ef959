package domain

// Search job states.
const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// SearchJob is the state of an asynchronous search.
type SearchJob struct {
	ID     string        `json:"job_id"`
	Status string        `json:"status"`
	Result *SearchResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}
