package model

const (
	EventPullRequest = "pull_request"
	EventPush        = "push"

	ActionClosed = "closed"
)

// TriggerEvent describes what started the run.
type TriggerEvent struct {
	Name   string
	Action string
	// Merged is only meaningful for pull request events.
	Merged bool
}

// IsChangeRequestClose reports whether the event is a pull request being
// closed. Payloads without an action are treated as closes, since the
// workflow is expected to subscribe to closed pull requests only.
func (e TriggerEvent) IsChangeRequestClose() bool {
	if e.Name != EventPullRequest {
		return false
	}
	return e.Action == "" || e.Action == ActionClosed
}
