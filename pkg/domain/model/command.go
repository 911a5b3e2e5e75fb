package model

import (
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommandTimeout bounds an external command when Command.Timeout is zero
const DefaultCommandTimeout = 30 * time.Second

const redacted = "***"

// Command describes an external program invocation. Args are passed to the
// program as-is; no shell is involved.
type Command struct {
	Name    string
	Args    []string
	Dir     string        // Working directory; empty means the current directory
	Timeout time.Duration // Zero means DefaultCommandTimeout
	Secrets []string      // Values replaced by "***" in every printable form of the command
}

// EffectiveTimeout returns the timeout to apply to this command
func (c *Command) EffectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultCommandTimeout
	}
	return c.Timeout
}

// Redact replaces every configured secret in s
func (c *Command) Redact(s string) string {
	for _, secret := range c.Secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

// String returns a shell-quoted, redacted command line suitable for logs
func (c *Command) String() string {
	words := make([]string, 0, len(c.Args)+1)
	for _, w := range append([]string{c.Name}, c.Args...) {
		w = c.Redact(w)
		if q, err := syntax.Quote(w, syntax.LangBash); err == nil {
			w = q
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// CommandResult is the captured output of a successful command
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}
