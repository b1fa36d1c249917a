// Package doctor inspects the host and reports whether package
// reconciliation can run: the desired-state file, the declared users,
// the Installation Manager tooling, and the install targets themselves.
package doctor

// Status classifies a diagnostic finding.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Result is a single diagnostic finding.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}
