package editor

import "time"

// Severity of a Notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a user-facing message about background work.
type Notice struct {
	Time     time.Time
	Severity Severity
	Category string
	PersonID string
	EditKey  string
	Message  string
	Err      error
}

func (n Notice) String() string {
	if n.Err != nil {
		return n.Message + ": " + n.Err.Error()
	}
	return n.Message
}

const noticeBuffer = 32
