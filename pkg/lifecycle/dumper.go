package lifecycle

import (
	"context"

	"github.com/gnames/gntenant/pkg/dump"
	"github.com/gnames/gntenant/pkg/tenant"
)

// Dumper writes portable SQL dumps of tenant objects to files.
type Dumper interface {
	// DumpTo writes the dump of target to path. conn is used by targets
	// read from the system catalog (functions, extensions) and may be nil
	// for pg_dump targets.
	DumpTo(
		ctx context.Context,
		conn tenant.Conn,
		target dump.Target,
		path string,
		opts dump.Options,
	) error
}
