package deploy

import "context"

// Reloader reloads a live core after its schema file changed.
type Reloader interface {
	Reload(ctx context.Context, core string) error
}

// HostResolver returns the fully-qualified name of the machine running schemagen.
type HostResolver interface {
	FQDN() (string, error)
}
