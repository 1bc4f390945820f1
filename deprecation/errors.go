package deprecation

import (
	"fmt"
	"time"
)

// DeadlineExceededError is returned from New when an overdue deprecated item
// is still present in the owning repository's CI. It aborts marker
// construction, and with it the owning package's initialization.
type DeadlineExceededError struct {
	Name     string
	Deadline time.Time
}

func (e *DeadlineExceededError) Error() string {
	return fmt.Sprintf("%s should have been removed on %s", e.Name, e.Deadline.Format(dateLayout))
}
