// internal/extract/result.go
package extract

// Status classifies the outcome of one field-group extraction. Sentinel
// strings in the output are derived from the status, so "no FAQs on the
// page" and "FAQ extraction crashed" stay distinguishable in the record
// without relying on caught-error side channels.
type Status int

const (
	// StatusFound means the field group was extracted.
	StatusFound Status = iota

	// StatusAbsent means the page rendered but the field group was not
	// there. A normal, expected terminal state.
	StatusAbsent

	// StatusErrored means extraction failed (timeout, malformed markup).
	// Still terminal: the record carries the field's error sentinel.
	StatusErrored
)

// String returns the textual form of a status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusAbsent:
		return "absent"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Outcome is the per-field-group extraction verdict.
type Outcome struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Found reports a successful extraction.
func Found() Outcome {
	return Outcome{Status: StatusFound}
}

// Absent reports a missing-but-expected field group.
func Absent(reason string) Outcome {
	return Outcome{Status: StatusAbsent, Reason: reason}
}

// Errored reports a failed extraction.
func Errored(reason string) Outcome {
	return Outcome{Status: StatusErrored, Reason: reason}
}

// OK reports whether the field group was extracted.
func (o Outcome) OK() bool {
	return o.Status == StatusFound
}
