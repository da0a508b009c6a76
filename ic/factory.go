package ic

import (
	"path"
	"reflect"

	"github.com/sarchlab/redstone/world"
)

// A Factory creates IC instances from signs.
type Factory interface {
	Create(sign *ChangedSign) (IC, error)
}

// A Verifier checks the sign of a newly placed IC before it is created.
type Verifier interface {
	Verify(sign *ChangedSign) error
}

// An ActorChecker checks whether the actor that placed the sign may use it
// the way it is configured.
type ActorChecker interface {
	CheckActor(sign *ChangedSign, actor world.Actor) error
}

// Restricted marks factories whose ICs can alter the world beyond redstone.
type Restricted interface {
	IsRestricted() bool
}

// Namespaced names the permission namespace of a factory.
type Namespaced interface {
	Namespace() string
}

// FactoryFunc turns a function into a Factory.
type FactoryFunc func(sign *ChangedSign) (IC, error)

// Create calls f.
func (f FactoryFunc) Create(sign *ChangedSign) (IC, error) {
	return f(sign)
}

func isRestricted(f Factory) bool {
	r, ok := f.(Restricted)
	return ok && r.IsRestricted()
}

func namespaceOf(f Factory) string {
	if n, ok := f.(Namespaced); ok {
		return n.Namespace()
	}

	t := reflect.TypeOf(f)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.PkgPath() == "" {
		return ""
	}

	return path.Base(t.PkgPath())
}
