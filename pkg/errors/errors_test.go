package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTree, "duplicate id: %d", 3)

	if err.Code != ErrCodeInvalidTree {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidTree)
	}
	if err.Message != "duplicate id: 3" {
		t.Errorf("Message = %v, want %v", err.Message, "duplicate id: 3")
	}
	if want := "INVALID_TREE: duplicate id: 3"; err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open tree.json")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.HasSuffix(err.Error(), ": no such file") {
		t.Errorf("Error() = %q, want cause suffix", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeNodeNotFound, false},
		{"outer code wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidConfig, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "node %d", 9)
	if got := GetCode(err); got != ErrCodeNodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNodeNotFound)
	}
	if got := UserMessage(err); got != "node 9" {
		t.Errorf("UserMessage() = %q, want %q", got, "node 9")
	}

	plain := errors.New("boom")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "boom")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"simple", "Spore", false},
		{"with space", "Agent Smith", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control", "Eve\x00", true},
		{"too long", strings.Repeat("a", maxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePercent(t *testing.T) {
	for _, v := range []int{0, 36, 100} {
		if err := ValidatePercent("health", v); err != nil {
			t.Errorf("ValidatePercent(%d) = %v, want nil", v, err)
		}
	}
	for _, v := range []int{-1, 101} {
		if err := ValidatePercent("health", v); err == nil {
			t.Errorf("ValidatePercent(%d) = nil, want error", v)
		}
	}
}
