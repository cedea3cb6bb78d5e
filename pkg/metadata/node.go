package metadata

import (
	"errors"
	"strings"
)

// Separator splits a scoped key into its scope and the key within that scope.
const Separator = "/"

// ErrNoProject is returned when a node's parent chain does not end in a project node.
var ErrNoProject = errors.New("metadata chain has no project root")

// Provider is the read side of a metadata node.
type Provider interface {
	Identifier() string
	Property(key string) (any, bool)
}

// Node is a single scope in the metadata tree.
type Node struct {
	identifier string
	entries    map[string]any
	parent     *Node
	root       bool
}

// NewScope creates a node with the given identifier chained under parent.
// A nil parent yields a detached node that cannot resolve a project.
func NewScope(identifier string, parent *Node) *Node {
	return &Node{
		identifier: identifier,
		entries:    make(map[string]any),
		parent:     parent,
	}
}

// Identifier returns the scope name this node answers to.
func (n *Node) Identifier() string {
	return n.identifier
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Set stores a value under key in this node's own entries.
func (n *Node) Set(key string, value any) {
	n.entries[key] = value
}

// Delete removes key from this node's own entries.
func (n *Node) Delete(key string) {
	delete(n.entries, key)
}

// Len reports the number of entries held directly by this node.
func (n *Node) Len() int {
	return len(n.entries)
}

// Property resolves key against this node and, for scoped keys, its ancestors.
func (n *Node) Property(key string) (any, bool) {
	scope, rest, scoped := strings.Cut(key, Separator)
	if !scoped {
		v, ok := n.entries[key]
		return v, ok
	}

	for cur := n; cur != nil; cur = cur.parent {
		if cur.identifier == scope {
			v, ok := cur.entries[rest]
			return v, ok
		}
	}
	return nil, false
}

// Project walks parent links up to the top of the chain and returns it as a
// project. The top must have been created by NewProject.
func (n *Node) Project() (*Project, error) {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	if !top.root {
		return nil, ErrNoProject
	}
	return &Project{Node: top}, nil
}
