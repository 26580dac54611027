// Package gateway resolves a set of requested top-level fields against the
// upstream adapters, one concurrent resolution per field, and assembles a
// partial result. A failing field never aborts or corrupts its siblings.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/skywatch/nasa-gateway/internal/nasa"
	"github.com/skywatch/nasa-gateway/internal/normalize"
)

// Resolvable top-level fields. Each maps to exactly one adapter+normalizer
// pair.
const (
	FieldAPOD   = "apod"
	FieldImages = "images"
	FieldNEO    = "neo"
)

// upstream is the adapter surface the dispatcher depends on. *nasa.Client
// satisfies it; tests substitute stubs.
type upstream interface {
	FetchAPOD(ctx context.Context, date string) (*nasa.APODPayload, error)
	SearchImages(ctx context.Context, p nasa.ImageSearchParams) (*nasa.ImageSearchPayload, error)
	FetchNeoFeed(ctx context.Context, startDate, endDate string) (*nasa.NEOFeedPayload, error)
}

// Dispatcher owns no per-request state; a single instance serves all
// requests concurrently.
type Dispatcher struct {
	upstream upstream
	log      *slog.Logger
}

// New builds a Dispatcher around the given adapters.
func New(client upstream, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{upstream: client, log: logger}
}

// FieldRequest is one requested top-level field with its raw argument map.
// Alias, when set, is the response key the caller asked for.
type FieldRequest struct {
	Name  string
	Alias string
	Args  map[string]any
}

func (f FieldRequest) key() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FieldValue pairs a field name with its resolved value; Value is nil when
// the field failed.
type FieldValue struct {
	Name  string
	Value any
}

// FieldError records one field-scoped failure.
type FieldError struct {
	Field   string
	Kind    nasa.ErrorKind
	Message string
}

// Result is built once per incoming query and discarded after the response.
// Values preserves the requested field order.
type Result struct {
	Values []FieldValue
	Errors []FieldError
}

// Execute resolves every requested field concurrently and waits for all of
// them before returning. Requesting zero fields yields an empty result.
func (d *Dispatcher) Execute(ctx context.Context, fields []FieldRequest) Result {
	values := make([]FieldValue, len(fields))
	failures := make([]*FieldError, len(fields))

	var wg sync.WaitGroup
	for i, field := range fields {
		wg.Add(1)
		go func(i int, field FieldRequest) {
			defer wg.Done()
			value, err := d.resolve(ctx, field)
			if err != nil {
				failures[i] = &FieldError{
					Field:   field.key(),
					Kind:    nasa.KindOf(err),
					Message: errMessage(err),
				}
				d.log.Warn("field resolution failed",
					slog.String("field", field.Name),
					slog.Any("err", err),
				)
				value = nil
			}
			values[i] = FieldValue{Name: field.key(), Value: value}
		}(i, field)
	}
	wg.Wait()

	result := Result{Values: values}
	for _, failure := range failures {
		if failure != nil {
			result.Errors = append(result.Errors, *failure)
		}
	}
	return result
}

func (d *Dispatcher) resolve(ctx context.Context, field FieldRequest) (any, error) {
	switch field.Name {
	case FieldAPOD:
		raw, err := d.upstream.FetchAPOD(ctx, stringArg(field.Args, "date"))
		if err != nil {
			return nil, err
		}
		pic, err := normalize.APOD(raw)
		if err != nil {
			return nil, err
		}
		return pic, nil

	case FieldImages:
		raw, err := d.upstream.SearchImages(ctx, nasa.ImageSearchParams{
			Query:     stringArg(field.Args, "query"),
			MediaType: stringArg(field.Args, "mediaType"),
			Page:      intArg(field.Args, "page"),
		})
		if err != nil {
			return nil, err
		}
		result, err := normalize.ImageSearch(raw)
		if err != nil {
			return nil, err
		}
		return result, nil

	case FieldNEO:
		raw, err := d.upstream.FetchNeoFeed(ctx,
			stringArg(field.Args, "startDate"),
			stringArg(field.Args, "endDate"),
		)
		if err != nil {
			return nil, err
		}
		feed, err := normalize.NEOFeed(raw)
		if err != nil {
			return nil, err
		}
		if raw.ElementCount != nil && *raw.ElementCount != feed.ElementCount {
			// The computed sum is canonical; the upstream count is only
			// cross-checked.
			d.log.Warn("neo element_count mismatch",
				slog.Int("upstream", *raw.ElementCount),
				slog.Int("computed", feed.ElementCount),
			)
		}
		return feed, nil
	}

	// Schema validation rejects unknown fields before dispatch; this guards
	// the raw API.
	return nil, &nasa.Error{Kind: nasa.KindRejected, Message: fmt.Sprintf("unknown field %q", field.Name)}
}

func errMessage(err error) string {
	var ue *nasa.Error
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}

func stringArg(args map[string]any, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
