// Package prompt is the capability contract between the import core and
// whatever surface collects answers from a human. The core never knows
// whether that surface is a terminal, a GUI, or nothing at all.
package prompt

import (
	"context"
	"errors"
)

var (
	// ErrCancelled: the human explicitly cancelled the prompt.
	ErrCancelled = errors.New("prompt: cancelled")
	// ErrUnattended: no human is available to answer (headless run).
	ErrUnattended = errors.New("prompt: unattended")
)

// Prompter is the set of interaction capabilities the import flow needs.
// Every call blocks until answered or the context is done.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)
	// ChooseOne asks to pick one of options; returns its index.
	ChooseOne(ctx context.Context, question string, options []string) (int, error)
	// InputText asks for a free-text answer.
	InputText(ctx context.Context, question string) (string, error)
	// InputAppIDs asks for one or more app ids (comma-separated entry,
	// each validated as all-digits).
	InputAppIDs(ctx context.Context, question string) ([]string, error)
}

// Headless answers nothing: every capability returns ErrUnattended.
// Used by the HTTP import path, where anything needing a human lands in
// the report instead.
type Headless struct{}

func (Headless) Confirm(context.Context, string) (bool, error) { return false, ErrUnattended }

func (Headless) ChooseOne(context.Context, string, []string) (int, error) { return 0, ErrUnattended }

func (Headless) InputText(context.Context, string) (string, error) { return "", ErrUnattended }

func (Headless) InputAppIDs(context.Context, string) ([]string, error) { return nil, ErrUnattended }
