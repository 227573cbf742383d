package domain

// Outcome classifies what a sync attempt actually did. Keeping the outcome
// and reason explicit lets the worker count and route failures distinctly
// instead of collapsing everything into one boolean.
type Outcome string

const (
	OutcomeSynced  Outcome = "synced"  // snapshot rebuilt and uploaded
	OutcomeDeleted Outcome = "deleted" // remote document removed
	OutcomeSkipped Outcome = "skipped" // nothing to do, by configuration or state
	OutcomeFailed  Outcome = "failed"  // remote call or upload declined
)

// Reason narrows a Skipped or Failed outcome.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNotMapped       Reason = "content type not mapped"
	ReasonIncompleteCfg   Reason = "incomplete configuration"
	ReasonStoreRejected   Reason = "store validation rejected"
	ReasonNoPublished     Reason = "no published items"
	ReasonUploadFailed    Reason = "upload declined"
	ReasonDeleteFailed    Reason = "remote delete declined"
)

// Result is the orchestrator's report for one sync or delete attempt.
type Result struct {
	Outcome   Outcome
	Reason    Reason
	ItemCount int
}

func (r Result) Skipped() bool { return r.Outcome == OutcomeSkipped }
func (r Result) Failed() bool  { return r.Outcome == OutcomeFailed }
