package diff

import "strings"

// OpType classifies one line of an edit script.
type OpType int

const (
	OpEqual  OpType = iota // line unchanged between the two sides
	OpInsert               // line present on the right side only
	OpDelete               // line present on the left side only
)

// Op is a single line operation in an edit script.
type Op struct {
	Type OpType
	Line string
}

// Lines computes the shortest line-level edit script turning a into b
// with the Myers algorithm. Runtime is O((N+M)*D) for inputs of N and
// M lines and an edit script of size D.
func Lines(a, b string) []Op {
	return myers(splitLines(a), splitLines(b))
}

// Changed reports whether the script contains any non-equal operation.
func Changed(ops []Op) bool {
	for _, op := range ops {
		if op.Type != OpEqual {
			return true
		}
	}
	return false
}

// Render formats an edit script in the familiar prefixed form, one
// line per operation: "  " equal, "+ " insert, "- " delete.
func Render(ops []Op) string {
	var sb strings.Builder
	for _, op := range ops {
		switch op.Type {
		case OpInsert:
			sb.WriteString("+ ")
		case OpDelete:
			sb.WriteString("- ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(op.Line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func myers(a, b []string) []Op {
	n, m := len(a), len(b)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]Op, m)
		for i, line := range b {
			ops[i] = Op{Type: OpInsert, Line: line}
		}
		return ops
	}
	if m == 0 {
		ops := make([]Op, n)
		for i, line := range a {
			ops[i] = Op{Type: OpDelete, Line: line}
		}
		return ops
	}

	max := n + m
	size := 2*max + 1
	v := make([]int, size)

	// trace[d] snapshots v after the d-th edit distance pass, for the
	// backtracking phase.
	var trace [][]int

	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + max

			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1]
			} else {
				x = v[idx-1] + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[idx] = x

			if x >= n && y >= m {
				snap := make([]int, size)
				copy(snap, v)
				trace = append(trace, snap)
				return backtrack(trace, a, b, d)
			}
		}

		snap := make([]int, size)
		copy(snap, v)
		trace = append(trace, snap)
	}

	return nil
}

// backtrack walks the snapshots backwards from the final (x, y) and
// emits the edit script in forward order.
func backtrack(trace [][]int, a, b []string, dFinal int) []Op {
	n, m := len(a), len(b)
	max := n + m
	x, y := n, m

	var ops []Op

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + max
		vPrev := trace[d-1]

		var prevK int
		if k == -d || (k != d && vPrev[idx-1] < vPrev[idx+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := vPrev[prevK+max]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, Op{Type: OpEqual, Line: a[x]})
		}

		if k == prevK+1 {
			x--
			ops = append(ops, Op{Type: OpDelete, Line: a[x]})
		} else {
			y--
			ops = append(ops, Op{Type: OpInsert, Line: b[y]})
		}
	}

	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, Op{Type: OpEqual, Line: a[x]})
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
