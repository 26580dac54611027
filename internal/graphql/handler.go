package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/skywatch/nasa-gateway/internal/gateway"
	"github.com/skywatch/nasa-gateway/internal/nasa"
)

// Handler serves POST /graphql. Field-level failures never change the HTTP
// status; only the transport layer (unreadable body, wrong method) does.
type Handler struct {
	dispatcher *gateway.Dispatcher
	schema     *ast.Schema
	log        *slog.Logger
	maxBody    int64
}

// NewHandler wires the dispatcher behind the query surface.
func NewHandler(d *gateway.Dispatcher, logger *slog.Logger, maxBodyBytes int) *Handler {
	return &Handler{
		dispatcher: d,
		schema:     Schema(),
		log:        logger,
		maxBody:    int64(maxBodyBytes),
	}
}

type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type response struct {
	Data   any             `json:"data"`
	Errors []responseError `json:"errors,omitempty"`
}

type responseError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	queryID := uuid.NewString()
	started := time.Now()

	var req request
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.respond(w, response{Errors: []responseError{{Message: "invalid request body"}}})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.respond(w, response{Errors: []responseError{{Message: "query must not be empty"}}})
		return
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "request", Input: req.Query})
	if err != nil {
		h.respond(w, response{Errors: gqlErrors(err)})
		return
	}
	if errs := validator.Validate(h.schema, doc); len(errs) > 0 {
		h.respond(w, response{Errors: gqlErrors(errs)})
		return
	}

	op, opErr := selectOperation(doc, req.OperationName)
	if opErr != nil {
		h.respond(w, response{Errors: []responseError{{Message: opErr.Error()}}})
		return
	}

	data, fieldErrs := h.execute(r.Context(), doc, op, req.Variables)

	resp := response{Data: data}
	for _, fe := range fieldErrs {
		resp.Errors = append(resp.Errors, responseError{
			Message: fe.Message,
			Path:    []any{fe.Field},
			Extensions: map[string]any{
				"code":      string(fe.Kind),
				"requestId": queryID,
			},
		})
	}
	h.respond(w, resp)

	h.log.Info("query executed",
		slog.String("query_id", queryID),
		slog.Int("fields", len(data.keys)),
		slog.Int("errors", len(fieldErrs)),
		slog.Duration("took", time.Since(started)),
	)
}

// execute flattens the operation's top-level selections, dispatches the
// resolvable ones and stitches meta fields back in, preserving request order.
func (h *Handler) execute(ctx context.Context, doc *ast.QueryDocument, op *ast.OperationDefinition, vars map[string]any) (*orderedData, []gateway.FieldError) {
	data := newOrderedData()
	var requests []gateway.FieldRequest
	var metaErrs []gateway.FieldError

	for _, field := range collectFields(doc, op.SelectionSet) {
		key := field.Alias
		if key == "" {
			key = field.Name
		}

		switch {
		case field.Name == "__typename":
			data.set(key, "Query")
		case strings.HasPrefix(field.Name, "__"):
			data.set(key, nil)
			metaErrs = append(metaErrs, gateway.FieldError{
				Field:   key,
				Kind:    nasa.KindRejected,
				Message: "introspection is not supported",
			})
		default:
			data.set(key, nil) // reserve position
			requests = append(requests, gateway.FieldRequest{
				Name:  field.Name,
				Alias: key,
				Args:  argumentValues(field, vars),
			})
		}
	}

	result := h.dispatcher.Execute(ctx, requests)
	for _, value := range result.Values {
		data.set(value.Name, value.Value)
	}

	return data, append(metaErrs, result.Errors...)
}

func argumentValues(field *ast.Field, vars map[string]any) map[string]any {
	if len(field.Arguments) == 0 {
		return nil
	}
	args := make(map[string]any, len(field.Arguments))
	for _, arg := range field.Arguments {
		value, err := arg.Value.Value(vars)
		if err != nil || value == nil {
			continue
		}
		args[arg.Name] = value
	}
	return args
}

func collectFields(doc *ast.QueryDocument, set ast.SelectionSet) []*ast.Field {
	var out []*ast.Field
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			out = append(out, s)
		case *ast.InlineFragment:
			out = append(out, collectFields(doc, s.SelectionSet)...)
		case *ast.FragmentSpread:
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				out = append(out, collectFields(doc, frag.SelectionSet)...)
			}
		}
	}
	return out
}

func selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, error) {
	var op *ast.OperationDefinition
	switch {
	case name != "":
		op = doc.Operations.ForName(name)
		if op == nil {
			return nil, fmt.Errorf("operation %q not found", name)
		}
	case len(doc.Operations) == 1:
		op = doc.Operations[0]
	default:
		return nil, errors.New("operationName is required when the document defines multiple operations")
	}
	if op.Operation != ast.Query {
		return nil, errors.New("only query operations are supported")
	}
	return op, nil
}

func gqlErrors(err error) []responseError {
	var list gqlerror.List
	switch typed := err.(type) {
	case gqlerror.List:
		list = typed
	case *gqlerror.Error:
		list = gqlerror.List{typed}
	default:
		return []responseError{{Message: err.Error()}}
	}

	out := make([]responseError, 0, len(list))
	for _, e := range list {
		re := responseError{Message: e.Message}
		for _, p := range e.Path {
			re.Path = append(re.Path, p)
		}
		if len(e.Extensions) > 0 {
			re.Extensions = e.Extensions
		}
		out = append(out, re)
	}
	return out
}

func (h *Handler) respond(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("encode response", slog.Any("err", err))
	}
}

// orderedData marshals the data map with keys in request order, which the
// stdlib map type cannot guarantee.
type orderedData struct {
	keys   []string
	values map[string]any
}

func newOrderedData() *orderedData {
	return &orderedData{values: make(map[string]any)}
}

func (d *orderedData) set(key string, value any) {
	if _, seen := d.values[key]; !seen {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *orderedData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
