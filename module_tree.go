package cmdflow

import (
	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types/queue"
)

// moduleTree stores a root module and all of its descendants in a flat table. Parent and
// child links are indices into nodes, so modules never point at each other directly.
type moduleTree struct {
	nodes []moduleNode
}

type moduleNode struct {
	module   *Module
	parent   int
	children []int
}

func newModuleTree(root *Module) *moduleTree {
	t := &moduleTree{nodes: []moduleNode{{module: root, parent: -1}}}
	root.tree = t
	root.index = 0
	return t
}

// attach moves the tree rooted at child under the node at parent. A child registered with
// a cache stays a root until it is removed.
func (t *moduleTree) attach(parent int, child *Module) error {
	if child.registrations.Load() > 0 {
		return errs.ErrModuleAlreadyRegistered.WithArgs(child.name)
	}
	if child.tree == t {
		return errs.ErrSubmoduleRegistration.WithArgs(child.name, t.nodes[parent].module.name)
	}
	if owner := child.Parent(); owner != nil {
		return errs.ErrSubmoduleRegistration.WithArgs(child.name, owner.name)
	}

	src := child.tree
	offset := len(t.nodes)
	for i, n := range src.nodes {
		node := moduleNode{module: n.module, parent: n.parent + offset}
		if i == 0 {
			node.parent = parent
		}
		node.children = make([]int, len(n.children))
		for j, c := range n.children {
			node.children[j] = c + offset
		}
		n.module.tree = t
		n.module.index = offset + i
		t.nodes = append(t.nodes, node)
	}
	t.nodes[parent].children = append(t.nodes[parent].children, offset)

	return nil
}

func (t *moduleTree) parent(index int) *Module {
	p := t.nodes[index].parent
	if p < 0 {
		return nil
	}
	return t.nodes[p].module
}

func (t *moduleTree) children(index int) []*Module {
	children := t.nodes[index].children
	out := make([]*Module, len(children))
	for i, c := range children {
		out[i] = t.nodes[c].module
	}
	return out
}

// walk visits the subtree at index breadth first. Returning false from fn stops the walk.
func (t *moduleTree) walk(index int, fn func(m *Module) bool) {
	q := queue.New(index)
	for q.Len() > 0 {
		i, _ := q.Dequeue()
		if !fn(t.nodes[i].module) {
			return
		}
		for _, c := range t.nodes[i].children {
			q.Enqueue(c)
		}
	}
}
