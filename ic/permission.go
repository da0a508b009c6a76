package ic

import (
	"strings"

	"github.com/sarchlab/redstone/world"
)

// DefaultPermissionRoot is the root of all the IC permission nodes.
const DefaultPermissionRoot = "redstone.ic"

// A PermissionGate decides who may create which IC. It is only consulted
// when an IC is created or removed by hand, never when it is triggered.
type PermissionGate struct {
	root string
}

// NewPermissionGate creates a gate whose nodes live under root.
func NewPermissionGate(root string) *PermissionGate {
	root = strings.TrimSuffix(strings.TrimSpace(root), ".")
	if root == "" {
		root = DefaultPermissionRoot
	}

	return &PermissionGate{root: root}
}

// Nodes lists the permission nodes that allow an actor to use the IC, in the
// order they are checked.
func (g *PermissionGate) Nodes(f Factory, id string) []string {
	id = strings.ToLower(id)

	nodes := []string{g.root + "." + id}

	if ns := namespaceOf(f); ns != "" {
		nodes = append(nodes, g.root+"."+ns+"."+id)
	}

	if isRestricted(f) {
		nodes = append(nodes, g.root+".restricted."+id)
	} else {
		nodes = append(nodes, g.root+".safe."+id)
	}

	return nodes
}

// Authorize returns nil if the actor holds any of the nodes of the IC, and a
// PermissionDeniedError otherwise.
func (g *PermissionGate) Authorize(
	actor world.Actor,
	f Factory,
	id string,
) error {
	for _, node := range g.Nodes(f, id) {
		if actor.HasPermission(node) {
			return nil
		}
	}

	return &PermissionDeniedError{Actor: actor.Name(), ID: id}
}
