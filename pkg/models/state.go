package models

type State string

const (
	Init     State = "init"
	Thinking State = "thinking"
	Idle     State = "idle"
	Failed   State = "failed" // dead state
	Finished State = "finished"
)

// Done reports whether the run can no longer change.
func (s State) Done() bool {
	return s == Failed || s == Finished
}
