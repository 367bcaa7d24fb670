// Package datasource abstracts where source bytes come from. The report
// pipeline consumes already-parsed tables; these sources only hand raw
// bytes to the parser.
package datasource

import (
	"context"
	"io"
)

// Source yields a readable byte stream for one tabular input.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
