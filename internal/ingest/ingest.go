// Package ingest decodes the candidate-locations JSON (spec.md §6) into
// schema.SchemaApplication values, materializing each entry's Expression
// tree in parallel with an errgroup fan-out over the independent entries.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"corrigo/internal/diagx"
	"corrigo/internal/expr"
	"corrigo/internal/schema"
)

// exprJSON mirrors the recursive Expression wire shape: {kind, type, op?,
// rawType, repr, args:[...]}.
type exprJSON struct {
	Kind    string     `json:"kind"`
	Type    string     `json:"type"`
	Op      string     `json:"op,omitempty"`
	RawType string     `json:"rawType"`
	Repr    string     `json:"repr"`
	Args    []exprJSON `json:"args,omitempty"`
}

type locationJSON struct {
	FileID      uint `json:"fileId"`
	BeginLine   uint `json:"beginLine"`
	BeginColumn uint `json:"beginColumn"`
	EndLine     uint `json:"endLine"`
	EndColumn   uint `json:"endColumn"`
}

type applicationJSON struct {
	AppID      uint       `json:"appId"`
	Schema     string     `json:"schema"`
	Context    string     `json:"context"`
	Location   locationJSON `json:"location"`
	Original   exprJSON   `json:"original"`
	Components []exprJSON `json:"components"`
}

// Load decodes the candidate-locations JSON document in data into
// SchemaApplications. Entries are materialized concurrently, bounded by
// GOMAXPROCS, and collected back in input order.
func Load(ctx context.Context, data []byte) ([]*schema.SchemaApplication, error) {
	var raw []applicationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &diagx.ParseError{Source: "candidate-locations", Err: err}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	results := make([]*schema.SchemaApplication, len(raw))
	loadErrors := make([]error, len(raw))

	g, gctx := errgroup.WithContext(ctx)
	jobs := runtime.GOMAXPROCS(0)
	g.SetLimit(min(jobs, len(raw)))

	for i, entry := range raw {
		g.Go(func(i int, entry applicationJSON) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				app, err := materialize(entry)
				if err != nil {
					loadErrors[i] = err
					return nil
				}
				results[i] = app
				return nil
			}
		}(i, entry))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, err := range loadErrors {
		if err != nil {
			return nil, &diagx.ParseError{Source: fmt.Sprintf("application[%d]", i), Err: err}
		}
	}
	return results, nil
}

func materialize(entry applicationJSON) (*schema.SchemaApplication, error) {
	sch, err := parseSchema(entry.Schema)
	if err != nil {
		return nil, err
	}
	ctx, err := parseContext(entry.Context)
	if err != nil {
		return nil, err
	}
	original, err := materializeExpr(entry.Original)
	if err != nil {
		return nil, err
	}
	components := make([]expr.Expression, len(entry.Components))
	for i, c := range entry.Components {
		comp, err := materializeExpr(c)
		if err != nil {
			return nil, err
		}
		components[i] = comp
	}
	return &schema.SchemaApplication{
		AppID:  entry.AppID,
		Schema: sch,
		Location: schema.Location{
			FileID:      entry.Location.FileID,
			BeginLine:   entry.Location.BeginLine,
			BeginColumn: entry.Location.BeginColumn,
			EndLine:     entry.Location.EndLine,
			EndColumn:   entry.Location.EndColumn,
		},
		Context:    ctx,
		Original:   original,
		Components: components,
	}, nil
}

func materializeExpr(e exprJSON) (expr.Expression, error) {
	kind, err := parseKind(e.Kind)
	if err != nil {
		return expr.Expression{}, err
	}
	typ, err := parseType(e.Type)
	if err != nil {
		return expr.Expression{}, err
	}
	out := expr.Expression{Kind: kind, Type: typ, RawType: e.RawType, Repr: e.Repr}
	if kind == expr.Operator {
		op, ok := operatorByName(e.Op)
		if !ok {
			return expr.Expression{}, fmt.Errorf("unknown operator %q", e.Op)
		}
		out.Op = op
	}
	if len(e.Args) > 0 {
		out.Args = make([]expr.Expression, len(e.Args))
		for i, a := range e.Args {
			arg, err := materializeExpr(a)
			if err != nil {
				return expr.Expression{}, err
			}
			out.Args[i] = arg
		}
	}
	if !out.Valid() {
		return expr.Expression{}, fmt.Errorf("expression %q has arity mismatch", e.Repr)
	}
	return out, nil
}

func parseSchema(s string) (schema.TransformationSchema, error) {
	switch s {
	case "Expression":
		return schema.Expression, nil
	case "IfGuard":
		return schema.IfGuard, nil
	case "ArrayInit":
		return schema.ArrayInit, nil
	default:
		return 0, fmt.Errorf("unknown transformation schema %q", s)
	}
}

func parseContext(s string) (schema.LocationContext, error) {
	switch s {
	case "Condition":
		return schema.Condition, nil
	case "Unknown", "":
		return schema.Unknown, nil
	default:
		return 0, fmt.Errorf("unknown location context %q", s)
	}
}

func parseKind(s string) (expr.Kind, error) {
	switch s {
	case "Operator":
		return expr.Operator, nil
	case "Variable":
		return expr.Variable, nil
	case "Constant":
		return expr.Constant, nil
	case "Parameter":
		return expr.Parameter, nil
	case "BV2":
		return expr.BV2, nil
	case "INT2":
		return expr.INT2, nil
	case "BOOL2":
		return expr.BOOL2, nil
	case "BOOL3":
		return expr.BOOL3, nil
	default:
		return 0, fmt.Errorf("unknown expression kind %q", s)
	}
}

func parseType(s string) (expr.Type, error) {
	switch s {
	case "Boolean":
		return expr.Boolean, nil
	case "Integer":
		return expr.Integer, nil
	case "Pointer":
		return expr.Pointer, nil
	case "Bitvector":
		return expr.Bitvector, nil
	case "Any", "":
		return expr.Any, nil
	default:
		return 0, fmt.Errorf("unknown expression type %q", s)
	}
}

func operatorByName(s string) (expr.Operator, bool) {
	if op, ok := expr.BinaryOperatorByString(s); ok {
		return op, true
	}
	if op, ok := expr.UnaryOperatorByString(s); ok {
		return op, true
	}
	switch s {
	case "bv_to_int":
		return expr.BVToInt, true
	case "int_to_bv":
		return expr.IntToBV, true
	case "int_cast":
		return expr.IntCast, true
	default:
		return 0, false
	}
}
