package batch

const noChild = -1

type node[T any] struct {
	item  T
	key   float64
	left  int
	right int
}

// StopSequencer orders items by a numeric key through incremental binary search tree
// insertion. Nodes live in a slice and link to their children by index, so neither
// insertion nor traversal recurses.
//
// A key strictly less than a node's key descends left, anything else descends right.
// Equal keys therefore come out in insertion order. The worst case is O(n²), which is
// fine for batch-sized inputs.
//
// A StopSequencer is not safe for concurrent use.
type StopSequencer[T any] struct {
	nodes []node[T]
}

// NewStopSequencer returns an empty sequencer with room for capacity items.
func NewStopSequencer[T any](capacity int) *StopSequencer[T] {
	return &StopSequencer[T]{nodes: make([]node[T], 0, max(capacity, 0))}
}

// Insert adds item under key.
func (s *StopSequencer[T]) Insert(item T, key float64) {
	s.nodes = append(s.nodes, node[T]{item: item, key: key, left: noChild, right: noChild})
	idx := len(s.nodes) - 1
	if idx == 0 {
		return
	}

	cur := 0
	for {
		n := &s.nodes[cur]
		if key < n.key {
			if n.left == noChild {
				n.left = idx
				return
			}
			cur = n.left
		} else {
			if n.right == noChild {
				n.right = idx
				return
			}
			cur = n.right
		}
	}
}

// Len returns the number of inserted items.
func (s *StopSequencer[T]) Len() int {
	return len(s.nodes)
}

// InOrder returns the items ascending by key.
func (s *StopSequencer[T]) InOrder() []T {
	out := make([]T, 0, len(s.nodes))
	s.walk(func(n node[T]) { out = append(out, n.item) })
	return out
}

// Keys returns the keys in the same order as InOrder.
func (s *StopSequencer[T]) Keys() []float64 {
	out := make([]float64, 0, len(s.nodes))
	s.walk(func(n node[T]) { out = append(out, n.key) })
	return out
}

func (s *StopSequencer[T]) walk(visit func(node[T])) {
	if len(s.nodes) == 0 {
		return
	}

	stack := make([]int, 0, len(s.nodes))
	cur := 0
	for cur != noChild || len(stack) > 0 {
		for cur != noChild {
			stack = append(stack, cur)
			cur = s.nodes[cur].left
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(s.nodes[top])
		cur = s.nodes[top].right
	}
}
