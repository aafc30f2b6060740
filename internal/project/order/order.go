// Package order computes a total ordering over workspace documents, used
// to order workspace symbols (feature/symbol.Workspace): root documents
// (those whose overlay says CanBeRoot) sort first, each contributing its
// dependency graph's preorder reversed; everything else follows (§3
// "Project ordering").
package order

import "texlab.dev/core/internal/file"

// Order maps a URI to its position in the computed sequence. Unknown
// URIs report an infinite position so they always sort last.
type Order struct {
	pos map[file.URI]int
}

// Build concatenates the reversed preorder of every root's dependency
// graph (in roots order), then appends any remaining URIs from all,
// deduplicating by first occurrence. preorderOf(root) walks root-first
// (root, then its includes); reversing puts each root's leaf-most
// dependency first and the root itself last, so an include chain
// A -> B -> C (C the root) orders A, B, C.
func Build(roots []file.URI, preorderOf func(file.URI) []file.URI, all []file.URI) *Order {
	o := &Order{pos: map[file.URI]int{}}
	next := 0
	add := func(u file.URI) {
		if _, ok := o.pos[u]; ok {
			return
		}
		o.pos[u] = next
		next++
	}
	for _, r := range roots {
		pre := preorderOf(r)
		for i := len(pre) - 1; i >= 0; i-- {
			add(pre[i])
		}
	}
	for _, u := range all {
		add(u)
	}
	return o
}

// Get returns u's position, or a value larger than any assigned
// position (effectively infinity) for an unknown URI.
func (o *Order) Get(u file.URI) int {
	if p, ok := o.pos[u]; ok {
		return p
	}
	return len(o.pos) + 1
}

// Len reports how many URIs have a finite position.
func (o *Order) Len() int { return len(o.pos) }
