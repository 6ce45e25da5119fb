package domain

import "errors"

var (
	// ErrConfiguration signals that the environment cannot satisfy a precondition
	// (version undeterminable, unsupported tier, core directory unknown, host mismatch).
	ErrConfiguration = errors.New("configuration error")
	// ErrSchema signals that field descriptors cannot be projected.
	ErrSchema = errors.New("schema error")
	// ErrIO signals a file write or network failure.
	ErrIO = errors.New("io error")
	// ErrReloadFailed signals that the schema was written but the core reload failed.
	ErrReloadFailed = errors.New("core reload failed")
)
