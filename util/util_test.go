package util

import "testing"

func TestPtrDeref(t *testing.T) {
	p := Ptr(42)
	if *p != 42 {
		t.Errorf("expected 42, got %d", *p)
	}
	if Deref(p) != 42 {
		t.Errorf("expected 42, got %d", Deref(p))
	}
	var nilPtr *string
	if Deref(nilPtr) != "" {
		t.Errorf("expected zero value for nil pointer")
	}
}

func TestContains(t *testing.T) {
	formats := []string{"json", "markdown"}
	if !Contains(formats, "json") {
		t.Error("expected json to be contained")
	}
	if Contains(formats, "yaml") {
		t.Error("expected yaml not to be contained")
	}
	if Contains([]string(nil), "x") {
		t.Error("expected empty slice to contain nothing")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "flag", "env"); got != "flag" {
		t.Errorf("expected first non-zero value 'flag', got %q", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("expected zero value when all empty, got %q", got)
	}
	if got := Coalesce(0, 7, 9); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}
