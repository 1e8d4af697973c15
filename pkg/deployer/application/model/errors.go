package model

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindValidation         ErrorKind = "ValidationError"
	KindRemoteUnavailable  ErrorKind = "RemoteUnavailable"
	KindDecode             ErrorKind = "DecodeError"
	KindUploadRejected     ErrorKind = "UploadRejected"
	KindDeployRejected     ErrorKind = "DeployRejected"
	KindPromoteFailed      ErrorKind = "PromoteFailed"
	KindConvergenceTimeout ErrorKind = "ConvergenceTimeout"
	KindTerminateFailed    ErrorKind = "TerminateFailed"
	KindDeleteFailed       ErrorKind = "DeleteFailed"
	KindCleanupFailed      ErrorKind = "CleanupFailed"
)

type Severity int

const (
	Fatal Severity = iota
	Recoverable
)

func (s Severity) String() string {
	if s == Recoverable {
		return "recoverable"
	}
	return "fatal"
}

// Severity tells whether a failure of this kind stops the run. Only
// termination and bundle deletion are best-effort.
func (k ErrorKind) Severity() Severity {
	switch k {
	case KindTerminateFailed, KindDeleteFailed:
		return Recoverable
	default:
		return Fatal
	}
}

// Error is a categorised failure. Help is printed for the user and should
// say what was attempted and what to do next.
type Error struct {
	Kind ErrorKind
	Help string
	Err  error
}

func NewError(kind ErrorKind, err error, help string) *Error {
	return &Error{Kind: kind, Err: err, Help: help}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Severity() Severity {
	return e.Kind.Severity()
}

// KindOf returns the kind of the first categorised error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var categorised *Error
	if errors.As(err, &categorised) {
		return categorised.Kind, true
	}
	return "", false
}

// SeverityOf treats anything uncategorised as fatal.
func SeverityOf(err error) Severity {
	kind, ok := KindOf(err)
	if !ok {
		return Fatal
	}
	return kind.Severity()
}

func HelpOf(err error) string {
	var categorised *Error
	if errors.As(err, &categorised) {
		return categorised.Help
	}
	return ""
}

// ConvergenceTimeout is returned when the remote deployer never reported a
// new version within the retry budget.
type ConvergenceTimeout struct {
	Attempts   int
	RetryCount int
	RetryDelay time.Duration
}

func (e *ConvergenceTimeout) Error() string {
	return fmt.Sprintf(
		"new version not detected after %d attempts (%d retries, %v between retries)",
		e.Attempts, e.RetryCount, e.RetryDelay,
	)
}

func NewConvergenceTimeoutError(timeout *ConvergenceTimeout) *Error {
	help := fmt.Sprintf(`We retried %d times with %d seconds between retries. Unfortunately, the
new version does not appear to have deployed successfully. Please check
logs, and contact support if this problem continues.

You may wish to retry this run again, but with debugging enabled
(--debug or RUNNER_DEBUG=1).
`, timeout.RetryCount, int(timeout.RetryDelay/time.Second))
	return NewError(KindConvergenceTimeout, timeout, help)
}
