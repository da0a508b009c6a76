package ic

import (
	"fmt"
	"sort"
	"strings"
)

// A Registration binds an IC ID to the factory that builds it and to the
// families it can be wired in.
type Registration struct {
	ID       string
	Factory  Factory
	Families []Family
}

// IsRestricted returns true if the IC needs the restricted permission.
func (r *Registration) IsRestricted() bool {
	return isRestricted(r.Factory)
}

// Namespace returns the permission namespace of the IC.
func (r *Registration) Namespace() string {
	return namespaceOf(r.Factory)
}

// A Registry maps IC IDs to registrations and long aliases to IC IDs.
// Registering an ID that is already present fails.
type Registry struct {
	registrations map[string]*Registration
	prefixes      map[string]int
	aliases       map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]*Registration),
		prefixes:      make(map[string]int),
		aliases:       make(map[string]string),
	}
}

// Register adds an IC. The first family is the default one.
func (r *Registry) Register(
	id string,
	factory Factory,
	families ...Family,
) error {
	id = strings.ToUpper(id)

	if !validID(id) {
		return fmt.Errorf("invalid IC id %q", id)
	}

	if factory == nil {
		return fmt.Errorf("IC %s has no factory", id)
	}

	if len(families) == 0 {
		return fmt.Errorf("IC %s has no family", id)
	}

	if _, ok := r.registrations[id]; ok {
		return fmt.Errorf("%w: IC %s", ErrDuplicateRegistration, id)
	}

	suffixes := make(map[string]bool)
	for _, f := range families {
		s := strings.ToUpper(f.Suffix())
		if suffixes[s] {
			return fmt.Errorf("%w: IC %s family suffix %q",
				ErrDuplicateRegistration, id, f.Suffix())
		}

		suffixes[s] = true
	}

	r.registrations[id] = &Registration{
		ID:       id,
		Factory:  factory,
		Families: append([]Family(nil), families...),
	}
	r.prefixes[prefixOf(id)]++

	return nil
}

// MustRegister is Register that panics on failure.
func (r *Registry) MustRegister(id string, factory Factory, families ...Family) {
	if err := r.Register(id, factory, families...); err != nil {
		panic(err)
	}
}

// Get returns the registration of an ID.
func (r *Registry) Get(id string) (*Registration, bool) {
	reg, ok := r.registrations[strings.ToUpper(id)]
	return reg, ok
}

// FamilyFor picks the family a suffix selects. The match ignores case and a
// trailing self-trigger S. An empty or unknown suffix selects the first
// family.
func (r *Registry) FamilyFor(reg *Registration, suffix string) Family {
	suffix = strings.ToUpper(strings.TrimSpace(suffix))
	if suffix == "" {
		return reg.Families[0]
	}

	if f := findFamily(reg.Families, suffix); f != nil {
		return f
	}

	if trimmed := strings.TrimSuffix(suffix, "S"); trimmed != suffix {
		if f := findFamily(reg.Families, trimmed); f != nil {
			return f
		}
	}

	return reg.Families[0]
}

func findFamily(families []Family, suffix string) Family {
	for _, f := range families {
		if strings.EqualFold(f.Suffix(), suffix) {
			return f
		}
	}

	return nil
}

// HasPrefix returns true if any registered ID starts with the prefix.
func (r *Registry) HasPrefix(prefix string) bool {
	return r.prefixes[strings.ToUpper(prefix)] > 0
}

// RegisterAlias maps a long name to a registered ID.
func (r *Registry) RegisterAlias(name, id string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	id = strings.ToUpper(id)

	if name == "" {
		return fmt.Errorf("empty alias for IC %s", id)
	}

	if _, ok := r.registrations[id]; !ok {
		return &UnknownIdentifierError{ID: id}
	}

	if prev, ok := r.aliases[name]; ok {
		return fmt.Errorf("%w: alias %q already names %s",
			ErrDuplicateRegistration, name, prev)
	}

	r.aliases[name] = id

	return nil
}

// LookupAlias returns the ID a long name stands for.
func (r *Registry) LookupAlias(name string) (string, bool) {
	id, ok := r.aliases[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Aliases returns the aliases of an ID, sorted.
func (r *Registry) Aliases(id string) []string {
	id = strings.ToUpper(id)

	var names []string

	for name, target := range r.aliases {
		if target == id {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// IDs returns all the registered IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.registrations))
	for id := range r.registrations {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
