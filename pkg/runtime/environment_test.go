package runtime

import (
	"errors"
	"testing"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
)

func TestEnvironmentShadowing(t *testing.T) {
	global := NewEnvironment(nil)
	if err := global.Define("n", IntegerValue{Val: 5}); err != nil {
		t.Fatalf("define n: %v", err)
	}
	inner := NewEnvironment(global)
	if err := inner.Define("n", IntegerValue{Val: 7}); err != nil {
		t.Fatalf("shadowing define failed: %v", err)
	}
	got, err := inner.Get("n")
	if err != nil || !Equal(got, IntegerValue{Val: 7}) {
		t.Fatalf("expected inner n = 7, got %#v (%v)", got, err)
	}
	got, err = global.Get("n")
	if err != nil || !Equal(got, IntegerValue{Val: 5}) {
		t.Fatalf("expected outer n = 5, got %#v (%v)", got, err)
	}
}

func TestEnvironmentRedefinition(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Define("x", BoolValue{Val: true}); err != nil {
		t.Fatalf("define x: %v", err)
	}
	err := env.Define("x", BoolValue{Val: false})
	if !errors.Is(err, ErrRedefinition) {
		t.Fatalf("expected ErrRedefinition, got %v", err)
	}
}

func TestEnvironmentAssignWalksOutward(t *testing.T) {
	global := NewEnvironment(nil)
	_ = global.Define("score", IntegerValue{Val: 1})
	inner := NewEnvironment(NewEnvironment(global))
	if err := inner.Assign("score", IntegerValue{Val: 2}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if inner.Has("score") {
		t.Fatalf("assign must not create a binding in the inner frame")
	}
	got, _ := global.Get("score")
	if !Equal(got, IntegerValue{Val: 2}) {
		t.Fatalf("expected score = 2, got %#v", got)
	}
	if err := inner.Assign("missing", NilValue{}); !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
	if _, err := inner.Get("missing"); !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
}

func TestStackIsLIFO(t *testing.T) {
	stack := NewStack(NewEnvironment(nil))
	a := stack.Push(nil)
	b := stack.Push(a)
	if stack.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", stack.Depth())
	}
	if err := stack.Pop(a); err == nil {
		t.Fatalf("expected out-of-order pop to fail")
	}
	if err := stack.Pop(b); err != nil {
		t.Fatalf("pop b: %v", err)
	}
	if err := stack.Pop(a); err != nil {
		t.Fatalf("pop a: %v", err)
	}
	if err := stack.Pop(a); err == nil {
		t.Fatalf("expected underflow")
	}
}

func TestEqual(t *testing.T) {
	tmpl := &board.PieceObj{Owner: 1, Num: 1, Name: "X", Display: "X"}
	twin := &board.PieceObj{Owner: 1, Num: 1, Name: "X", Display: "X"}
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", IntegerValue{Val: 3}, IntegerValue{Val: 3}, true},
		{"int vs string", IntegerValue{Val: 3}, StringValue{Val: "3"}, false},
		{"cells", CellValue{X: 1, Y: 2}, CellValue{X: 1, Y: 2}, true},
		{"nil", NilValue{}, NilValue{}, true},
		{"same template", TemplateValue{Template: tmpl}, TemplateValue{Template: tmpl}, true},
		{"equal-looking templates", TemplateValue{Template: tmpl}, TemplateValue{Template: twin}, false},
		{"pieces by id", PieceValue{ID: 2}, PieceValue{ID: 3}, false},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
