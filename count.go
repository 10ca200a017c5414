package calc

import (
	"strconv"
	"strings"
)

// Counts describes the shape of an expression tree.
type Counts struct {
	// Depth is the deepest nesting of operations and calls. A lone number
	// has depth 0.
	Depth int
	// Ops is the number of distinct operations and calls. Structurally equal
	// subtrees count once.
	Ops int
	// Numbers is the number of distinct number values among the leaves.
	Numbers int
}

// Count measures the tree rooted at n.
func Count(n Node) Counts {
	c := counter{nums: make(map[string]bool), ops: make(map[string]bool)}
	r, _ := Walk[counted](n, &c)
	return Counts{Depth: r.depth, Ops: len(c.ops), Numbers: len(c.nums)}
}

type counted struct {
	// key identifies the subtree structurally.
	key   string
	depth int
}

type counter struct {
	nums map[string]bool
	ops  map[string]bool
}

func (c *counter) VisitNumber(n Number) (counted, error) {
	k := numberKey(n)
	c.nums[k] = true
	return counted{key: k}, nil
}

func (c *counter) VisitOperation(o *Operation, args []counted) (counted, error) {
	var b strings.Builder
	d := 0
	b.WriteString(o.Op.String())
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.key)
		d = max(d, arg.depth)
	}
	b.WriteByte(')')
	k := b.String()
	c.ops[k] = true
	return counted{key: k, depth: d + 1}, nil
}

func (c *counter) VisitCall(f *Call, arg counted) (counted, error) {
	k := f.Name + "(" + arg.key + ")"
	c.ops[k] = true
	return counted{key: k, depth: arg.depth + 1}, nil
}

// numberKey identifies a number by kind and exact value.
func numberKey(n Number) string {
	switch n := n.(type) {
	case Real:
		return "r" + realKey(n)
	case Rational:
		return "q" + realKey(n.Num) + "/" + realKey(n.Den)
	case Complex:
		return "c" + realKey(n.Re.Num) + "/" + realKey(n.Re.Den) + "," + realKey(n.Im.Num) + "/" + realKey(n.Im.Den)
	}
	panic("calc: unknown number kind")
}

func realKey(x Real) string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}
