// Package command builds and runs external tool invocations.
package command

import (
	"fmt"
	"strings"
)

// Command is an invocation of an executable, extendable with arguments.
type Command struct {
	executable string
	args       []string
}

// New returns a command anchored at the given executable path.
func New(executable string) *Command {
	return &Command{executable: executable}
}

// Arg appends a single argument and returns the command for chaining.
func (c *Command) Arg(arg string) *Command {
	c.args = append(c.args, arg)
	return c
}

// Args appends several arguments and returns the command for chaining.
func (c *Command) Args(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// Executable returns the executable path the command is anchored at.
func (c *Command) Executable() string {
	return c.executable
}

// Arguments returns a copy of the argument list.
func (c *Command) Arguments() []string {
	out := make([]string, len(c.args))
	copy(out, c.args)
	return out
}

func (c *Command) String() string {
	return strings.TrimSpace(c.executable + " " + strings.Join(c.args, " "))
}

// ExecutionError reports a command that ran but exited non-zero.
type ExecutionError struct {
	ExitCode int
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
}
