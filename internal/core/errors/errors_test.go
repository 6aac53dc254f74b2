package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "source file not found")
		if err.Error() != "[NOT_FOUND] source file not found" {
			t.Errorf("expected [NOT_FOUND] source file not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("disk full")
		err := Wrap(original, CodeWrite, "write rewritten file")
		expected := "[WRITE_ERROR] write rewritten file: disk full"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidation, "path outside repository root")
		if !IsCode(err, CodeValidation) {
			t.Error("expected IsCode to return true for CodeValidation")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("unexpected token")
		err := Wrap(original, CodeParse, "parse source")
		if !IsCode(err, CodeParse) {
			t.Error("expected IsCode to return true for wrapped CodeParse")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeValidation, "destination collides")
		err = AddContext(err, CtxPath, "/repo/pkg/util.py")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected a DomainError")
		}
		if de.Context[CtxPath] != "/repo/pkg/util.py" {
			t.Errorf("context not attached: %v", de.Context)
		}
	})
}
