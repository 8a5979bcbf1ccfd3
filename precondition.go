package cmdflow

import (
	"context"
	"reflect"

	"github.com/napalu/cmdflow/errs"
)

// Precondition guards a command or every command of a module. Returning an error rejects
// the candidate with a PreconditionFailResult, unless the error is a framework fault or a
// cancellation, which abort the pipeline.
type Precondition interface {
	Name() string
	Check(ctx context.Context, c *CommandContext) error
}

type preconditionFunc struct {
	name string
	fn   func(ctx context.Context, c *CommandContext) error
}

// PreconditionFunc creates a named Precondition from fn
func PreconditionFunc(name string, fn func(ctx context.Context, c *CommandContext) error) Precondition {
	return &preconditionFunc{name: name, fn: fn}
}

func (p *preconditionFunc) Name() string { return p.name }

func (p *preconditionFunc) Check(ctx context.Context, c *CommandContext) error {
	return p.fn(ctx, c)
}

type resolvedPrecondition struct {
	typ reflect.Type
}

// ResolvedPrecondition returns a Precondition that resolves the evaluator registered for
// typ through the request's service resolver each time it is checked
func ResolvedPrecondition(typ reflect.Type) Precondition {
	return &resolvedPrecondition{typ: typ}
}

func (p *resolvedPrecondition) Name() string { return p.typ.String() }

func (p *resolvedPrecondition) Check(ctx context.Context, c *CommandContext) error {
	inst, err := resolveService(c, p.typ)
	if err != nil {
		return errs.Fault(err)
	}

	pre, ok := inst.(Precondition)
	if !ok {
		return errs.Fault(errs.ErrServiceTypeMismatch.WithArgs(p.typ, "cmdflow.Precondition"))
	}

	return pre.Check(ctx, c)
}
