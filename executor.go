package cmdflow

import (
	"context"
	"fmt"
	"reflect"

	"github.com/napalu/cmdflow/errs"
)

// HandlerShape is the declared return shape of a handler
type HandlerShape int

const (
	ShapeVoid HandlerShape = iota
	ShapeAsyncVoid
	ShapeResult
	ShapeAsyncResult
	ShapeObject
	ShapeAsyncObject
)

// String returns the string representation of a HandlerShape
func (s HandlerShape) String() string {
	switch s {
	case ShapeVoid:
		return "void"
	case ShapeAsyncVoid:
		return "async void"
	case ShapeResult:
		return "result"
	case ShapeAsyncResult:
		return "async result"
	case ShapeObject:
		return "object"
	case ShapeAsyncObject:
		return "async object"
	}
	return fmt.Sprintf("HandlerShape(%d)", int(s))
}

// Handler function types, one per HandlerShape
type (
	VoidHandlerFunc        func(ctx context.Context, c *CommandContext) error
	AsyncVoidHandlerFunc   func(ctx context.Context, c *CommandContext) *Task[struct{}]
	ResultHandlerFunc      func(ctx context.Context, c *CommandContext) (Result, error)
	AsyncResultHandlerFunc func(ctx context.Context, c *CommandContext) *Task[Result]
	ObjectHandlerFunc      func(ctx context.Context, c *CommandContext) (any, error)
	AsyncObjectHandlerFunc func(ctx context.Context, c *CommandContext) *Task[any]
)

// Handler is a command callable tagged with its shape
type Handler struct {
	fn    any
	shape HandlerShape
}

// Shape returns the handler's return shape
func (h Handler) Shape() HandlerShape { return h.shape }

// NewHandler classifies fn by its return shape. fn must be one of the handler function
// types or an unnamed function with the same signature; use ObjectHandler and
// AsyncObjectHandler to adapt functions returning a concrete type.
func NewHandler(fn any) (Handler, error) {
	if fn == nil {
		return Handler{}, errs.ErrNilHandler.WithArgs("<nil>")
	}
	if v := reflect.ValueOf(fn); v.Kind() == reflect.Func && v.IsNil() {
		return Handler{}, errs.ErrNilHandler.WithArgs(reflect.TypeOf(fn).String())
	}

	switch h := fn.(type) {
	case VoidHandlerFunc:
		return Handler{fn: h, shape: ShapeVoid}, nil
	case func(context.Context, *CommandContext) error:
		return Handler{fn: VoidHandlerFunc(h), shape: ShapeVoid}, nil
	case AsyncVoidHandlerFunc:
		return Handler{fn: h, shape: ShapeAsyncVoid}, nil
	case func(context.Context, *CommandContext) *Task[struct{}]:
		return Handler{fn: AsyncVoidHandlerFunc(h), shape: ShapeAsyncVoid}, nil
	case ResultHandlerFunc:
		return Handler{fn: h, shape: ShapeResult}, nil
	case func(context.Context, *CommandContext) (Result, error):
		return Handler{fn: ResultHandlerFunc(h), shape: ShapeResult}, nil
	case AsyncResultHandlerFunc:
		return Handler{fn: h, shape: ShapeAsyncResult}, nil
	case func(context.Context, *CommandContext) *Task[Result]:
		return Handler{fn: AsyncResultHandlerFunc(h), shape: ShapeAsyncResult}, nil
	case ObjectHandlerFunc:
		return Handler{fn: h, shape: ShapeObject}, nil
	case func(context.Context, *CommandContext) (any, error):
		return Handler{fn: ObjectHandlerFunc(h), shape: ShapeObject}, nil
	case AsyncObjectHandlerFunc:
		return Handler{fn: h, shape: ShapeAsyncObject}, nil
	case func(context.Context, *CommandContext) *Task[any]:
		return Handler{fn: AsyncObjectHandlerFunc(h), shape: ShapeAsyncObject}, nil
	}

	return Handler{}, errs.ErrUnsupportedHandlerShape.WithArgs(reflect.TypeOf(fn).String())
}

// ObjectHandler adapts a handler returning a concrete type to ObjectHandlerFunc
func ObjectHandler[T any](fn func(ctx context.Context, c *CommandContext) (T, error)) ObjectHandlerFunc {
	return func(ctx context.Context, c *CommandContext) (any, error) {
		v, err := fn(ctx, c)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// AsyncObjectHandler adapts an asynchronous handler returning a concrete type to AsyncObjectHandlerFunc
func AsyncObjectHandler[T any](fn func(ctx context.Context, c *CommandContext) *Task[T]) AsyncObjectHandlerFunc {
	return func(ctx context.Context, c *CommandContext) *Task[any] {
		inner := fn(ctx, c)
		return Go(func() (any, error) {
			v, err := inner.Await(ctx)
			if err != nil {
				return nil, err
			}
			return v, nil
		})
	}
}

// Executor invokes a handler and normalizes its outcome to a Result. Handler errors are
// returned unchanged and panics are not recovered.
type Executor interface {
	Invoke(ctx context.Context, c *CommandContext) (Result, error)
}

// SelectExecutor returns the executor for the handler's shape
func SelectExecutor(h Handler) (Executor, error) {
	switch h.shape {
	case ShapeVoid:
		if fn, ok := h.fn.(VoidHandlerFunc); ok {
			return voidExecutor(fn), nil
		}
	case ShapeAsyncVoid:
		if fn, ok := h.fn.(AsyncVoidHandlerFunc); ok {
			return asyncVoidExecutor(fn), nil
		}
	case ShapeResult:
		if fn, ok := h.fn.(ResultHandlerFunc); ok {
			return resultExecutor(fn), nil
		}
	case ShapeAsyncResult:
		if fn, ok := h.fn.(AsyncResultHandlerFunc); ok {
			return asyncResultExecutor(fn), nil
		}
	case ShapeObject:
		if fn, ok := h.fn.(ObjectHandlerFunc); ok {
			return objectExecutor(fn), nil
		}
	case ShapeAsyncObject:
		if fn, ok := h.fn.(AsyncObjectHandlerFunc); ok {
			return asyncObjectExecutor(fn), nil
		}
	}

	return nil, errs.ErrUnsupportedHandlerShape.WithArgs(h.shape.String())
}

type voidExecutor VoidHandlerFunc

func (e voidExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	if err := e(ctx, c); err != nil {
		return nil, err
	}
	return SuccessResult{}, nil
}

type asyncVoidExecutor AsyncVoidHandlerFunc

func (e asyncVoidExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	if _, err := e(ctx, c).Await(ctx); err != nil {
		return nil, err
	}
	return SuccessResult{}, nil
}

type resultExecutor ResultHandlerFunc

func (e resultExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	r, err := e(ctx, c)
	return passThrough(r, err)
}

type asyncResultExecutor AsyncResultHandlerFunc

func (e asyncResultExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	r, err := e(ctx, c).Await(ctx)
	return passThrough(r, err)
}

type objectExecutor ObjectHandlerFunc

func (e objectExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	v, err := e(ctx, c)
	if err != nil {
		return nil, err
	}
	return PayloadResult{Value: v}, nil
}

type asyncObjectExecutor AsyncObjectHandlerFunc

func (e asyncObjectExecutor) Invoke(ctx context.Context, c *CommandContext) (Result, error) {
	v, err := e(ctx, c).Await(ctx)
	if err != nil {
		return nil, err
	}
	return PayloadResult{Value: v}, nil
}

// passThrough returns a handler's Result, substituting SuccessResult for nil
func passThrough(r Result, err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	if r == nil {
		return SuccessResult{}, nil
	}
	return r, nil
}
