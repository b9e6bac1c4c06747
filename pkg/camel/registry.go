package camel

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds beans that Camel routes refer to by name.
type Registry struct {
	beans map[string]any
}

func NewRegistry() *Registry {
	return &Registry{beans: map[string]any{}}
}

func (r *Registry) Bind(name string, bean any) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("cannot bind bean '%v' to registry as name is empty", bean)
	}
	r.beans[name] = bean
	return nil
}

func (r *Registry) Lookup(name string) (any, bool) {
	bean, ok := r.beans[name]
	return bean, ok
}

func (r *Registry) Names() []string {
	result := make([]string, 0, len(r.beans))
	for name := range r.beans {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (r *Registry) Len() int {
	return len(r.beans)
}

// LookupAs finds a bean and asserts its type.
func LookupAs[T any](r *Registry, name string) (T, error) {
	var zero T
	bean, ok := r.Lookup(name)
	if !ok {
		return zero, fmt.Errorf("bean '%s' is not bound in registry", name)
	}
	typed, ok := bean.(T)
	if !ok {
		return zero, fmt.Errorf("bean '%s' is of type '%T' but '%T' is expected", name, bean, zero)
	}
	return typed, nil
}
