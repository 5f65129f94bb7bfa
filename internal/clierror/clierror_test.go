package clierror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("running command: %w", New(UnableToParseSolutionName, "no name"))

	kind, ok := KindOf(err)
	if !ok || kind != UnableToParseSolutionName {
		t.Fatalf("KindOf = %v, %v", kind, ok)
	}
	if err.Error() != "running command: no name" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindOfPlainError(t *testing.T) {
	if _, ok := KindOf(errors.New("boom")); ok {
		t.Fatal("plain errors carry no kind")
	}
}

func TestKindString(t *testing.T) {
	if got := OutputDirectoryDoesNotExist.String(); got != "OutputDirectoryDoesNotExist" {
		t.Fatalf("String() = %q", got)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestArgumentErrorUnwrap(t *testing.T) {
	inner := errors.New("unknown flag: --nope")
	err := &ArgumentError{Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ArgumentError should unwrap to its cause")
	}
}
