package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"immichstack/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalService, "stack", "create", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"stack", "create", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !services.IsTransient(err) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: nil, want: 0},
		{err: services.Wrap(services.ErrConfiguration, "config", "load", "missing key", nil), want: services.ExitConfiguration},
		{err: services.Wrap(services.ErrValidation, "run", "flags", "bad", nil), want: services.ExitConfiguration},
		{err: services.Wrap(services.ErrNotFound, "album", "get", "missing", nil), want: services.ExitNotFound},
		{err: services.Wrap(services.ErrTransient, "stack", "create", "503", nil), want: services.ExitService},
		{err: fmt.Errorf("outer: %w", services.Wrap(services.ErrExternalService, "", "", "", nil)), want: services.ExitService},
		{err: errors.New("plain"), want: services.ExitFailure},
	}
	for i, tc := range cases {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("case %d: ExitCode(%v) = %d, want %d", i, tc.err, got, tc.want)
		}
	}
}
