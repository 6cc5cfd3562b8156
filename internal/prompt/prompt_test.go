package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(fmt.Errorf("wrapped: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("eof")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	options := []string{"article", "page"}
	if got := indexOf(options, "page"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := indexOf(options, "blog"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestScripted(t *testing.T) {
	ctx := context.Background()
	driver := &Scripted{Inputs: []string{"", "page"}, Confirms: []bool{true}, Selects: []int{1}}

	got, err := driver.Input(ctx, InputConfig{Message: "Entity type", Default: "node"})
	if err != nil || got != "node" {
		t.Fatalf("expected default answer, got %q %v", got, err)
	}
	got, err = driver.Input(ctx, InputConfig{Message: "Bundle"})
	if err != nil || got != "page" {
		t.Fatalf("expected scripted answer, got %q %v", got, err)
	}
	if _, err := driver.Input(ctx, InputConfig{Message: "Field", Required: true}); err == nil {
		t.Fatalf("expected required error once the script is exhausted")
	}
	ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "Continue?"})
	if err != nil || !ok {
		t.Fatalf("expected confirm true, got %v %v", ok, err)
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Pick", Options: []string{"a", "b"}})
	if err != nil || idx != 1 {
		t.Fatalf("expected index 1, got %d %v", idx, err)
	}

	want := []string{"Entity type", "Bundle", "Field", "Continue?", "Pick"}
	if diff := cmp.Diff(want, driver.Asked); diff != "" {
		t.Fatalf("asked mismatch (-want +got):\n%s", diff)
	}
}
