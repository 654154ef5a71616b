package vkeyboard

import "math"

// FindAncestor walks parent links upward from start and returns the first
// ancestor matching match. path holds the nodes from start up to the child
// directly below the ancestor. start itself is never matched.
func FindAncestor[N any](start N, parent func(N) (N, bool), match func(N) bool) (ancestor N, path []N, ok bool) {
	node := start
	for {
		path = append(path, node)
		up, has := parent(node)
		if !has {
			var zero N
			return zero, nil, false
		}
		if match(up) {
			return up, path, true
		}
		node = up
	}
}

func scrollParent(n ScrollNode) (ScrollNode, bool) {
	p := n.ParentNode()
	return p, p != nil
}

func scrollable(n ScrollNode) bool {
	return n.ScrollExtent() > n.VisibleExtent()
}

// scrollDestination finds the nearest scrollable ancestor of node and the
// position that puts node in the middle of its visible region.
func scrollDestination(node ScrollNode) (ScrollNode, float64, bool) {
	if node == nil {
		return nil, 0, false
	}

	ancestor, path, ok := FindAncestor(node, scrollParent, scrollable)
	if !ok {
		return nil, 0, false
	}

	offset := 0.0
	for _, n := range path {
		offset += n.OffsetTop()
	}

	dest := offset - ancestor.VisibleExtent()/2
	dest = math.Max(0, math.Min(ancestor.ScrollExtent(), dest))
	return ancestor, dest, true
}
