package harness

// Trace event kinds.
const (
	EventZoneCall    = "zone_call"
	EventZoneSkipped = "zone_skipped"
	EventCheck       = "check"
)

// TraceEvent is one observable step of an iteration, in execution order.
type TraceEvent struct {
	Type string `json:"type"`
	Seq  int64  `json:"seq"`

	// OrderIndex is set for zone events.
	OrderIndex int    `json:"order_index,omitempty"`
	Zone       string `json:"zone,omitempty"`
	Decision   string `json:"decision,omitempty"`
	Response   string `json:"response,omitempty"`

	// Check is the selector of a check event; Passed its outcome.
	Check  string `json:"check,omitempty"`
	Passed bool   `json:"passed,omitempty"`
}

// IterationResult is the outcome of running one seed.
type IterationResult struct {
	Index int `json:"index"`

	// Token identifies the iteration in logs. It comes from the campaign's
	// TokenGenerator and is assigned in index order.
	Token string `json:"token"`
	Seed  uint64 `json:"seed"`

	// Fingerprint is the content hash of the iteration's context.
	Fingerprint string `json:"fingerprint"`

	Pass   bool         `json:"pass"`
	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`
}

// AddError records a failure and marks the iteration failed.
func (r *IterationResult) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *IterationResult) addEvent(ev TraceEvent) {
	ev.Seq = int64(len(r.Trace)) + 1
	r.Trace = append(r.Trace, ev)
}

// Result is the outcome of a campaign.
type Result struct {
	Campaign string `json:"campaign"`

	// Pass is true when every iteration passed.
	Pass       bool              `json:"pass"`
	Iterations []IterationResult `json:"iterations"`

	// Errors holds campaign-level failures, not per-iteration ones.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates an empty passing result.
func NewResult(campaign string) *Result {
	return &Result{
		Campaign:   campaign,
		Pass:       true,
		Iterations: []IterationResult{},
		Errors:     []string{},
	}
}

// AddError records a campaign-level failure.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed returns the iterations that did not pass, in index order.
func (r *Result) Failed() []IterationResult {
	var failed []IterationResult
	for _, it := range r.Iterations {
		if !it.Pass {
			failed = append(failed, it)
		}
	}
	return failed
}
