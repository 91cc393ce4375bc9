package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Terminal is a line-based Prompter over an io.Reader/io.Writer pair
// (normally stdin/stdout). Answers "skip" and "cancel" are recognized
// everywhere; "cancel" maps to ErrCancelled.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", ErrCancelled // EOF on stdin
	}
	line := strings.TrimSpace(t.in.Text())
	if strings.EqualFold(line, "cancel") {
		return "", ErrCancelled
	}
	return line, nil
}

func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/n]: ", question)
	for {
		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprint(t.out, "please answer y or n: ")
	}
}

func (t *Terminal) ChooseOne(ctx context.Context, question string, options []string) (int, error) {
	fmt.Fprintln(t.out, question)
	for i, o := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprint(t.out, "choice (or cancel): ")
	for {
		line, err := t.readLine(ctx)
		if err != nil {
			return 0, err
		}
		var n int
		if _, err := fmt.Sscanf(line, "%d", &n); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.out, "enter 1-%d (or cancel): ", len(options))
	}
}

func (t *Terminal) InputText(ctx context.Context, question string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", question)
	return t.readLine(ctx)
}

func (t *Terminal) InputAppIDs(ctx context.Context, question string) ([]string, error) {
	fmt.Fprintf(t.out, "%s (comma-separated ids, \"skip\" or \"cancel\"): ", question)
	for {
		line, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(line, "skip") || line == "" {
			return nil, nil
		}
		ids, ok := SplitAppIDs(line)
		if ok {
			return ids, nil
		}
		fmt.Fprint(t.out, "ids must be digits, e.g. 271590 or 271590, 271591: ")
	}
}

// SplitAppIDs parses comma-separated app ids, requiring each to be
// all-digits. ok=false when any piece is malformed or none remain.
func SplitAppIDs(s string) ([]string, bool) {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !allDigits(part) {
			return nil, false
		}
		ids = append(ids, part)
	}
	return ids, len(ids) > 0
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
