// Package permutation implements small fixed-size permutations used by the
// symmetry canonicalizer: permutations of 2 elements (board flip), of 3
// elements (band/stack and row/column reordering within a band or stack),
// and of 9 elements (digit relabeling).
package permutation

// Permutation2 is a permutation of {0, 1}.
type Permutation2 struct {
	forward  [2]int
	backward [2]int
}

// Permutation3 is a permutation of {0, 1, 2}.
type Permutation3 struct {
	forward  [3]int
	backward [3]int
}

// Permutation9 is a permutation of {0, ..., 8}.
type Permutation9 struct {
	forward  [9]int
	backward [9]int
}

// Identity2 is the permutation that fixes every element.
func Identity2() Permutation2 { return Permutation2{forward: [2]int{0, 1}, backward: [2]int{0, 1}} }

// Identity3 is the permutation that fixes every element.
func Identity3() Permutation3 {
	return Permutation3{forward: [3]int{0, 1, 2}, backward: [3]int{0, 1, 2}}
}

// Identity9 is the permutation that fixes every element.
func Identity9() Permutation9 {
	var p Permutation9
	for i := range p.forward {
		p.forward[i] = i
		p.backward[i] = i
	}
	return p
}

func (p Permutation2) Forward(i int) int  { return p.forward[i] }
func (p Permutation2) Backward(i int) int { return p.backward[i] }
func (p Permutation3) Forward(i int) int  { return p.forward[i] }
func (p Permutation3) Backward(i int) int { return p.backward[i] }
func (p Permutation9) Forward(i int) int  { return p.forward[i] }
func (p Permutation9) Backward(i int) int { return p.backward[i] }

// SwapForward swaps where i and j map to, keeping backward consistent.
func (p Permutation2) SwapForward(i, j int) Permutation2 {
	p.forward[i], p.forward[j] = p.forward[j], p.forward[i]
	p.backward[p.forward[i]], p.backward[p.forward[j]] = i, j
	return p
}

func (p Permutation3) SwapForward(i, j int) Permutation3 {
	p.forward[i], p.forward[j] = p.forward[j], p.forward[i]
	p.backward[p.forward[i]], p.backward[p.forward[j]] = i, j
	return p
}

func (p Permutation9) SwapForward(i, j int) Permutation9 {
	p.forward[i], p.forward[j] = p.forward[j], p.forward[i]
	p.backward[p.forward[i]], p.backward[p.forward[j]] = i, j
	return p
}

func (p Permutation2) Inverse() Permutation2 { return Permutation2{forward: p.backward, backward: p.forward} }
func (p Permutation3) Inverse() Permutation3 { return Permutation3{forward: p.backward, backward: p.forward} }
func (p Permutation9) Inverse() Permutation9 { return Permutation9{forward: p.backward, backward: p.forward} }

// Then composes p and other: apply p first, then other.
func (p Permutation2) Then(other Permutation2) Permutation2 {
	var out Permutation2
	for i := range out.forward {
		out.forward[i] = other.forward[p.forward[i]]
		out.backward[i] = p.backward[other.backward[i]]
	}
	return out
}

func (p Permutation3) Then(other Permutation3) Permutation3 {
	var out Permutation3
	for i := range out.forward {
		out.forward[i] = other.forward[p.forward[i]]
		out.backward[i] = p.backward[other.backward[i]]
	}
	return out
}

func (p Permutation9) Then(other Permutation9) Permutation9 {
	var out Permutation9
	for i := range out.forward {
		out.forward[i] = other.forward[p.forward[i]]
		out.backward[i] = p.backward[other.backward[i]]
	}
	return out
}

// ThenArray2 reorders arr according to p: result[i] = arr[p.Forward(i)].
func ThenArray2[T any](p Permutation2, arr [2]T) [2]T {
	var out [2]T
	for i := range out {
		out[i] = arr[p.forward[i]]
	}
	return out
}

// ThenArray3 reorders arr according to p: result[i] = arr[p.Forward(i)].
func ThenArray3[T any](p Permutation3, arr [3]T) [3]T {
	var out [3]T
	for i := range out {
		out[i] = arr[p.forward[i]]
	}
	return out
}

// All2 lists both permutations of {0, 1}.
func All2() []Permutation2 {
	return []Permutation2{
		{forward: [2]int{0, 1}, backward: [2]int{0, 1}},
		{forward: [2]int{1, 0}, backward: [2]int{1, 0}},
	}
}

// All3 lists all six permutations of {0, 1, 2}.
func All3() []Permutation3 {
	return []Permutation3{
		{forward: [3]int{0, 1, 2}, backward: [3]int{0, 1, 2}},
		{forward: [3]int{0, 2, 1}, backward: [3]int{0, 2, 1}},
		{forward: [3]int{1, 0, 2}, backward: [3]int{1, 0, 2}},
		{forward: [3]int{1, 2, 0}, backward: [3]int{2, 0, 1}},
		{forward: [3]int{2, 0, 1}, backward: [3]int{1, 2, 0}},
		{forward: [3]int{2, 1, 0}, backward: [3]int{2, 1, 0}},
	}
}
