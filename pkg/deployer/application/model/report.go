package model

type State string

const (
	StateInit            State = "Init"
	StateValidated       State = "Validated"
	StateVersionsFetched State = "VersionsFetched"
	StateCleanupBranch   State = "CleanupBranch"
	StateMainBranch      State = "MainBranch"
	StateUploaded        State = "Uploaded"
	StateDeployed        State = "Deployed"
	StateTerminating     State = "Terminating"
	StateConverging      State = "Converging"
	StatePromoting       State = "Promoting"
	StateDone            State = "Done"
	StateFailed          State = "Failed"
)

// RunReport is what a deployer run learned and did.
type RunReport struct {
	State       State
	Transitions []State

	Versions      VersionSet
	Oldest        *Version
	Latest        *Version
	NewestVersion *Version

	// Recovered holds best-effort failures that did not stop the run.
	Recovered []error
}

func NewRunReport() *RunReport {
	return &RunReport{
		State:       StateInit,
		Transitions: []State{StateInit},
	}
}

func (r *RunReport) Transition(state State) {
	r.State = state
	r.Transitions = append(r.Transitions, state)
}

func (r *RunReport) Recover(err error) {
	r.Recovered = append(r.Recovered, err)
}

// Convergence is the outcome of waiting for a new version to appear.
type Convergence struct {
	Converged bool
	Version   Version
	Attempts  int
}

func Converged(version Version, attempts int) Convergence {
	return Convergence{Converged: true, Version: version, Attempts: attempts}
}

func TimedOut(attempts int) Convergence {
	return Convergence{Attempts: attempts}
}
