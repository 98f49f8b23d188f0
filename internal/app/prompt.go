// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordPrompter asks the operator for a secret value.
type PasswordPrompter func(prompt string) (string, error)

// NewTerminalPrompter reads passwords from in. Echo is disabled when in is a
// terminal; otherwise one line is read per prompt so that passwords can be
// piped in by scripts.
func NewTerminalPrompter(in *os.File, out io.Writer) PasswordPrompter {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return func(prompt string) (string, error) {
			fmt.Fprint(out, prompt)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("error reading password: %w", err)
			}
			return string(b), nil
		}
	}

	return newLinePrompter(in, out)
}

func newLinePrompter(in io.Reader, out io.Writer) PasswordPrompter {
	reader := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
