package diff

import (
	"strings"
	"testing"
)

func TestIdenticalInputs(t *testing.T) {
	ops := Lines("a\nb\nc\n", "a\nb\nc\n")
	if Changed(ops) {
		t.Errorf("identical inputs reported changed: %v", ops)
	}
	if len(ops) != 3 {
		t.Errorf("ops = %v", ops)
	}
}

func TestEmptySides(t *testing.T) {
	if ops := Lines("", ""); ops != nil {
		t.Errorf("ops = %v", ops)
	}

	ops := Lines("", "a\nb\n")
	if len(ops) != 2 || ops[0].Type != OpInsert || ops[1].Type != OpInsert {
		t.Errorf("ops = %v", ops)
	}

	ops = Lines("a\nb\n", "")
	if len(ops) != 2 || ops[0].Type != OpDelete {
		t.Errorf("ops = %v", ops)
	}
}

func TestSingleLineChange(t *testing.T) {
	ops := Lines("one\ntwo\nthree\n", "one\nTWO\nthree\n")
	if !Changed(ops) {
		t.Fatal("change not detected")
	}

	var inserts, deletes, equals int
	for _, op := range ops {
		switch op.Type {
		case OpInsert:
			inserts++
		case OpDelete:
			deletes++
		case OpEqual:
			equals++
		}
	}
	if inserts != 1 || deletes != 1 || equals != 2 {
		t.Errorf("ops = %v", ops)
	}
}

// The script must reconstruct both sides exactly.
func TestScriptReconstructsBothSides(t *testing.T) {
	a := "alpha\nbeta\ngamma\ndelta\n"
	b := "alpha\ngamma\nGAMMA\ndelta\nepsilon\n"
	ops := Lines(a, b)

	var left, right []string
	for _, op := range ops {
		switch op.Type {
		case OpEqual:
			left = append(left, op.Line)
			right = append(right, op.Line)
		case OpDelete:
			left = append(left, op.Line)
		case OpInsert:
			right = append(right, op.Line)
		}
	}

	if got := strings.Join(left, "\n") + "\n"; got != a {
		t.Errorf("left = %q, want %q", got, a)
	}
	if got := strings.Join(right, "\n") + "\n"; got != b {
		t.Errorf("right = %q, want %q", got, b)
	}
}

func TestRender(t *testing.T) {
	ops := []Op{
		{Type: OpEqual, Line: "ctx"},
		{Type: OpDelete, Line: "old"},
		{Type: OpInsert, Line: "new"},
	}
	want := "  ctx\n- old\n+ new\n"
	if got := Render(ops); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestMissingTrailingNewline(t *testing.T) {
	ops := Lines("a\nb", "a\nb")
	if Changed(ops) || len(ops) != 2 {
		t.Errorf("ops = %v", ops)
	}
}
