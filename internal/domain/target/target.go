package target

import (
	"fmt"

	"github.com/kailas-cloud/schemagen/internal/domain"
)

// Kind discriminates the deployment strategy.
type Kind int

const (
	// Stdout prints the document for the operator to save manually.
	Stdout Kind = iota
	// FilePath writes the document to a caller-chosen path.
	FilePath
	// CommitLocal writes into the live core's conf directory and reloads the core.
	CommitLocal
)

func (k Kind) String() string {
	switch k {
	case Stdout:
		return "stdout"
	case FilePath:
		return "file"
	case CommitLocal:
		return "commit_local"
	default:
		return "unknown"
	}
}

// Target is exactly one deployment strategy. Build it with the constructors.
type Target struct {
	kind Kind
	path string
}

// NewStdout returns the stdout target.
func NewStdout() Target { return Target{kind: Stdout} }

// NewFilePath returns a file target for path.
func NewFilePath(path string) Target { return Target{kind: FilePath, path: path} }

// NewCommitLocal returns the commit-and-reload target.
func NewCommitLocal() Target { return Target{kind: CommitLocal} }

// FromFlags selects the target from CLI flags. Filename and commit are mutually exclusive.
func FromFlags(filename string, commit bool) (Target, error) {
	switch {
	case filename != "" && commit:
		return Target{}, fmt.Errorf("%w: --filename and --commit-local are mutually exclusive", domain.ErrConfiguration)
	case commit:
		return NewCommitLocal(), nil
	case filename != "":
		return NewFilePath(filename), nil
	default:
		return NewStdout(), nil
	}
}

// Kind returns the strategy.
func (t Target) Kind() Kind { return t.kind }

// Path returns the output path for FilePath targets.
func (t Target) Path() string { return t.path }
