package types

import "testing"

func TestPositionOrder(t *testing.T) {
	a := Position{Line: 1, Col: 4}
	b := Position{Line: 2, Col: 0}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatal("Before ordering is wrong")
	}
	if s, e := Ordered(b, a); s != a || e != b {
		t.Fatalf("Ordered(b, a) = %v, %v", s, e)
	}
	if got := a.String(); got != "2:5" {
		t.Fatalf("String() = %q", got)
	}
}

func TestEditInfo(t *testing.T) {
	if !(EditInfo{}).IsZero() {
		t.Fatal("zero edit not reported as zero")
	}
	e := EditInfo{StartIndex: 3, OldEndIndex: 3, NewEndIndex: 7}
	if e.IsZero() {
		t.Fatal("insert reported as zero")
	}
	in := e.InputEdit()
	if in.StartIndex != 3 || in.NewEndIndex != 7 {
		t.Fatalf("InputEdit() = %+v", in)
	}
	if got := e.String(); got != "bytes 3..3 -> 3..7" {
		t.Fatalf("String() = %q", got)
	}
}
