package viewsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/wayfind-dev/wayfind/pkg/route"
)

// ErrNotFound is returned when a source has no view under the given name.
var ErrNotFound = errors.New("viewsource: view not found")

// ErrTooLarge is returned when a view exceeds the source's size limit.
var ErrTooLarge = errors.New("viewsource: view too large")

// Source fetches the raw bytes of a named view. Implementations must be
// safe for concurrent use; the navigation engine resolves lazy slots from
// multiple goroutines.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DecodeFunc turns fetched view bytes into the component value placed in
// the slot.
type DecodeFunc func(data []byte) (any, error)

// Loader adapts a source into a lazy slot loader for the named view. The
// slot machinery handles memoization; the loader itself fetches every time
// it is called. A nil decode stores the raw bytes.
//
//	b.Page(route.PageOptions{
//	    Lazy: viewsource.Loader(src, "reports/summary", decodeView),
//	})
func Loader(src Source, name string, decode DecodeFunc) route.LoaderFunc {
	return func(ctx context.Context) (any, error) {
		data, err := src.Fetch(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", name, err)
		}
		if decode == nil {
			return data, nil
		}
		return decode(data)
	}
}
