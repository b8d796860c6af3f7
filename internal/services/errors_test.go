package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "convert", "run ffmpeg", "encode failed", cause)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "external tool error: convert: run ffmpeg: encode failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "external tool error: pipeline failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapOmitsEmptyParts(t *testing.T) {
	err := Wrap(ErrValidation, "probe", "", "missing audio stream", nil)
	want := "validation error: probe: missing audio stream"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
