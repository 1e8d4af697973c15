package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVersionSet_OldestAndLatest(t *testing.T) {
	versions := NewVersionSet("3", "1", "2")

	oldest, ok := versions.Oldest()
	assert.True(t, ok)
	assert.Equal(t, Version{ID: "3", Position: 0}, oldest)

	latest, ok := versions.Latest()
	assert.True(t, ok)
	assert.Equal(t, Version{ID: "2", Position: 2}, latest)
	assert.Equal(t, []VersionID{"3", "1", "2"}, versions.IDs())
}

func TestVersionSet_Empty(t *testing.T) {
	var versions VersionSet

	_, ok := versions.Oldest()
	assert.False(t, ok)
	_, ok = versions.Latest()
	assert.False(t, ok)
}

func TestDeployment_IsLive(t *testing.T) {
	assert.True(t, Deployment{Aliases: []string{"beta", LiveAlias}}.IsLive())
	assert.False(t, Deployment{Aliases: []string{"beta"}}.IsLive())
	assert.False(t, Deployment{}.IsLive())
}

func TestVersion_IsLive(t *testing.T) {
	assert.True(t, Version{ID: "1", Aliases: []string{LiveAlias}}.IsLive())
	assert.False(t, Version{ID: "2", Aliases: []string{"beta"}}.IsLive())
	assert.False(t, NewVersionSet("3")[0].IsLive())
}

func TestTriggerEvent_IsChangeRequestClose(t *testing.T) {
	assert.True(t, TriggerEvent{Name: EventPullRequest, Action: ActionClosed}.IsChangeRequestClose())
	assert.True(t, TriggerEvent{Name: EventPullRequest}.IsChangeRequestClose())
	assert.False(t, TriggerEvent{Name: EventPullRequest, Action: "synchronize"}.IsChangeRequestClose())
	assert.False(t, TriggerEvent{Name: EventPush}.IsChangeRequestClose())
}

func TestErrorSeverity(t *testing.T) {
	for kind, want := range map[ErrorKind]Severity{
		KindValidation:         Fatal,
		KindRemoteUnavailable:  Fatal,
		KindDecode:             Fatal,
		KindUploadRejected:     Fatal,
		KindDeployRejected:     Fatal,
		KindPromoteFailed:      Fatal,
		KindConvergenceTimeout: Fatal,
		KindCleanupFailed:      Fatal,
		KindTerminateFailed:    Recoverable,
		KindDeleteFailed:       Recoverable,
	} {
		err := fmt.Errorf("wrapped: %w", NewError(kind, fmt.Errorf("cause"), ""))
		assert.Equal(t, want, SeverityOf(err), "kind %v", kind)
	}
	assert.Equal(t, Fatal, SeverityOf(fmt.Errorf("plain")))
}

func TestConvergenceTimeoutError(t *testing.T) {
	err := NewConvergenceTimeoutError(&ConvergenceTimeout{Attempts: 11, RetryCount: 10, RetryDelay: 5 * time.Second})

	assert.Equal(t, KindConvergenceTimeout, err.Kind)
	assert.Contains(t, err.Error(), "11 attempts")
	assert.Contains(t, err.Help, "We retried 10 times with 5 seconds between retries")
	assert.Contains(t, err.Help, "debugging enabled")
}

func TestRunReport_Transition(t *testing.T) {
	report := NewRunReport()
	report.Transition(StateValidated)
	report.Transition(StateFailed)

	assert.Equal(t, StateFailed, report.State)
	assert.Equal(t, []State{StateInit, StateValidated, StateFailed}, report.Transitions)
}
