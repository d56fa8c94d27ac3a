package ani

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// The codec never validates links between nodes. These helpers stop on
// bad indices and loops, and CheckTree reports them.

var ErrBadTree = errors.New("bad node tree")

func (a *ANI) validIndex(i int16) bool {
	return i >= 0 && int(i) < len(a.Nodes)
}

// Roots returns the nodes without parent.
func (a *ANI) Roots() []int {
	roots := make([]int, 0, 1)
	for i := range a.Nodes {
		if a.Nodes[i].ParentIndex == NODE_NONE {
			roots = append(roots, i)
		}
	}
	return roots
}

// Children follows FirstChildIndex and then NextSiblingIndex of node i.
// The walk stops at an invalid index or at a node already listed.
func (a *ANI) Children(i int) []int {
	children := make([]int, 0)
	seen := make(map[int16]struct{})
	for c := a.Nodes[i].FirstChildIndex; a.validIndex(c); c = a.Nodes[c].NextSiblingIndex {
		if _, already := seen[c]; already {
			break
		}
		seen[c] = struct{}{}
		children = append(children, int(c))
	}
	return children
}

// CheckTree reports links pointing outside the node list, nodes that are
// their own parent, cycles through parents and cycles through siblings.
func (a *ANI) CheckTree() error {
	for i := range a.Nodes {
		n := &a.Nodes[i]
		for _, link := range []struct {
			name  string
			index int16
		}{
			{"parent", n.ParentIndex},
			{"first child", n.FirstChildIndex},
			{"next sibling", n.NextSiblingIndex},
		} {
			if link.index != NODE_NONE && !a.validIndex(link.index) {
				return errors.Wrapf(ErrBadTree, "node %d %q: %s index %d out of range", i, n.Name, link.name, link.index)
			}
		}
		if int(n.ParentIndex) == i {
			return errors.Wrapf(ErrBadTree, "node %d %q is its own parent", i, n.Name)
		}
	}

	for i := range a.Nodes {
		n := &a.Nodes[i]
		steps := 0
		for p := n.ParentIndex; p != NODE_NONE; p = a.Nodes[p].ParentIndex {
			if steps++; steps > len(a.Nodes) {
				return errors.Wrapf(ErrBadTree, "node %d %q: parent chain loops", i, n.Name)
			}
		}

		seen := make(map[int16]struct{})
		for s := n.FirstChildIndex; s != NODE_NONE; s = a.Nodes[s].NextSiblingIndex {
			if _, already := seen[s]; already {
				return errors.Wrapf(ErrBadTree, "node %d %q: sibling chain loops at %d", i, n.Name, s)
			}
			seen[s] = struct{}{}
		}
	}
	return nil
}

func (a *ANI) StringNode(i int, spaces string) string {
	n := &a.Nodes[i]
	s := fmt.Sprintf("%snode %d [%v geom:%d <=%d child:%d next:%d] %s\n",
		spaces, i, n.Type, n.GeomIndex, n.ParentIndex, n.FirstChildIndex, n.NextSiblingIndex, n.Name)
	if n.Animation != nil {
		s += fmt.Sprintf("%s  anim %v: %d frames\n", spaces, n.Animation.Format, len(n.Animation.Frames))
	}
	return s
}

// StringTree prints the hierarchy from the roots. Nodes not reachable
// from any root are printed afterwards.
func (a *ANI) StringTree() string {
	var buffer bytes.Buffer
	visited := make([]bool, len(a.Nodes))

	var walk func(i int, spaces string)
	walk = func(i int, spaces string) {
		if visited[i] {
			return
		}
		visited[i] = true
		buffer.WriteString(a.StringNode(i, spaces))
		for _, c := range a.Children(i) {
			walk(c, spaces+"  ")
		}
	}

	for _, root := range a.Roots() {
		walk(root, "")
	}
	for i := range a.Nodes {
		if !visited[i] {
			buffer.WriteString("unreachable:\n")
			walk(i, "  ")
		}
	}
	return buffer.String()
}
