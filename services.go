package cmdflow

import (
	"reflect"
	"sync"

	"github.com/napalu/cmdflow/errs"
)

// ServiceResolver resolves instances by type. Type parsers overridden per parameter, custom
// argument parsers and resolved preconditions are obtained through it.
type ServiceResolver interface {
	Resolve(t reflect.Type) (any, error)
}

// ServiceResolverFunc adapts a function to the ServiceResolver interface
type ServiceResolverFunc func(t reflect.Type) (any, error)

// Resolve calls f
func (f ServiceResolverFunc) Resolve(t reflect.Type) (any, error) {
	return f(t)
}

// ServiceProvider is a concurrency-safe map based ServiceResolver. Registrations are
// singletons; there is no lifetime management.
type ServiceProvider struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
	fallback ServiceResolver
}

// NewServiceProvider creates a provider. Types it does not know are resolved through
// fallback when one is given.
func NewServiceProvider(fallback ...ServiceResolver) *ServiceProvider {
	p := &ServiceProvider{services: make(map[reflect.Type]any)}
	if len(fallback) > 0 {
		p.fallback = fallback[0]
	}
	return p
}

// Register makes instance resolvable as t. instance must be assignable to t.
func (p *ServiceProvider) Register(t reflect.Type, instance any) error {
	if instance == nil || !reflect.TypeOf(instance).AssignableTo(t) {
		return errs.ErrServiceTypeMismatch.WithArgs(reflect.TypeOf(instance), t)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.services[t] = instance
	return nil
}

// Resolve returns the instance registered for t
func (p *ServiceProvider) Resolve(t reflect.Type) (any, error) {
	p.mu.RLock()
	inst, ok := p.services[t]
	p.mu.RUnlock()

	if ok {
		return inst, nil
	}
	if p.fallback != nil {
		return p.fallback.Resolve(t)
	}
	return nil, errs.ErrServiceNotFound.WithArgs(t)
}

// Provide registers instance under type T
func Provide[T any](p *ServiceProvider, instance T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.services[TypeOf[T]()] = instance
}

// Resolve resolves an instance of T from r
func Resolve[T any](r ServiceResolver) (T, error) {
	var zero T
	inst, err := r.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}

	v, ok := inst.(T)
	if !ok {
		return zero, errs.ErrServiceTypeMismatch.WithArgs(reflect.TypeOf(inst), TypeOf[T]())
	}
	return v, nil
}

// TypeOf returns the reflect.Type of T, including interface types
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func resolveService(c *CommandContext, t reflect.Type) (any, error) {
	if c.Services == nil {
		return nil, errs.ErrServiceNotFound.WithArgs(t)
	}
	return c.Services.Resolve(t)
}
