package pipeline

import "fmt"

// JobNotFoundError reports a generation request for an unknown job id.
type JobNotFoundError struct {
	ID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job %s not found", e.ID)
}
