package integrations

import (
	"log"
	"sort"

	"formguard/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Adapter binds the gate to one form handler.
type Adapter interface {
	Name() string
	Mount(router fiber.Router)
}

// Deps are the collaborators every adapter is built from.
type Deps struct {
	Gate        *Gate
	Submissions repositories.SubmissionRepository
}

type Factory func(deps Deps) Adapter

// Registry maps adapter names, as stored in the settings, to factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry knows every adapter shipped with the service.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ContactFormName, NewContactForm)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled builds the adapters for names in order. Unknown names are logged
// and skipped.
func (r *Registry) Enabled(names []string, deps Deps) []Adapter {
	adapters := make([]Adapter, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			log.Printf("%sunknown integration %q, skipping", logPrefix, name)
			continue
		}
		adapters = append(adapters, factory(deps))
	}
	return adapters
}
