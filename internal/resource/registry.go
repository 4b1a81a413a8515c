package resource

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hilthontt/powersite/internal/domain"
)

// Resource is the type-erased view of an Engine that transport code uses.
type Resource interface {
	Name() string
	Descriptor() Descriptor
	List(ctx context.Context, caller domain.Caller, q Query) (Page[any], error)
	Get(ctx context.Context, caller domain.Caller, id uint) (any, error)
	Create(ctx context.Context, caller domain.Caller, payload []byte) (any, error)
	Update(ctx context.Context, caller domain.Caller, id uint, payload []byte) (any, error)
	Delete(ctx context.Context, caller domain.Caller, id uint) error
	NamedQuery(ctx context.Context, caller domain.Caller, name string, params url.Values) ([]any, error)
	BulkAction(ctx context.Context, caller domain.Caller, name string, ids []uint) (int64, error)
	Count(ctx context.Context, filters map[string]any) (int64, error)
}

// Erase adapts e to Resource.
func (e *Engine[T, PT]) Erase() Resource {
	return erased[T, PT]{e: e}
}

type erased[T any, PT interface {
	*T
	domain.Record
}] struct {
	e *Engine[T, PT]
}

func (r erased[T, PT]) Name() string {
	return r.e.Name()
}

func (r erased[T, PT]) Descriptor() Descriptor {
	return r.e.Descriptor()
}

func (r erased[T, PT]) List(ctx context.Context, caller domain.Caller, q Query) (Page[any], error) {
	page, err := r.e.List(ctx, caller, q)
	if err != nil {
		return Page[any]{}, err
	}
	return page.erase(), nil
}

func (r erased[T, PT]) Get(ctx context.Context, caller domain.Caller, id uint) (any, error) {
	rec, err := r.e.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r erased[T, PT]) Create(ctx context.Context, caller domain.Caller, payload []byte) (any, error) {
	rec, err := r.e.Create(ctx, caller, payload)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r erased[T, PT]) Update(ctx context.Context, caller domain.Caller, id uint, payload []byte) (any, error) {
	rec, err := r.e.Update(ctx, caller, id, payload)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r erased[T, PT]) Delete(ctx context.Context, caller domain.Caller, id uint) error {
	return r.e.Delete(ctx, caller, id)
}

func (r erased[T, PT]) NamedQuery(ctx context.Context, caller domain.Caller, name string, params url.Values) ([]any, error) {
	results, err := r.e.NamedQuery(ctx, caller, name, params)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(results))
	for i := range results {
		out[i] = results[i]
	}
	return out, nil
}

func (r erased[T, PT]) BulkAction(ctx context.Context, caller domain.Caller, name string, ids []uint) (int64, error) {
	return r.e.BulkAction(ctx, caller, name, ids)
}

func (r erased[T, PT]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	return r.e.Count(ctx, filters)
}

// Registry holds the served resources in registration order.
type Registry struct {
	order  []Resource
	byName map[string]Resource
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Resource)}
}

func (r *Registry) Register(res Resource) error {
	if _, exists := r.byName[res.Name()]; exists {
		return fmt.Errorf("resource %q already registered", res.Name())
	}
	r.byName[res.Name()] = res
	r.order = append(r.order, res)
	return nil
}

func (r *Registry) Lookup(name string) (Resource, bool) {
	res, ok := r.byName[name]
	return res, ok
}

func (r *Registry) All() []Resource {
	return r.order
}
