package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// RunOptions controls where a command runs and where its output goes.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult carries captured output and the process exit code.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes commands. The process-backed implementation is ExecRunner;
// tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, cmd *Command, opts RunOptions) (RunResult, error)
}

// ExecRunner runs commands via os/exec, blocking until completion.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd *Command, opts RunOptions) (RunResult, error) {
	c := exec.CommandContext(ctx, cmd.Executable(), cmd.Arguments()...)
	if opts.Dir != "" {
		c.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		c.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	c.Stdout = stdoutWriter
	c.Stderr = stderrWriter

	err := c.Run()
	result := RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

var _ Runner = ExecRunner{}

// Executor runs commands and enforces the zero-exit contract.
type Executor struct {
	logger logrus.FieldLogger
	runner Runner
}

// NewExecutor returns an executor backed by the given runner, defaulting to
// ExecRunner when runner is nil.
func NewExecutor(logger logrus.FieldLogger, runner Runner) *Executor {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Executor{logger: logger, runner: runner}
}

// ExecuteCapturing runs cmd, mirroring its standard output into out, and
// returns the exit code. A non-zero exit logs the captured output at error
// level and yields an *ExecutionError.
func (e *Executor) ExecuteCapturing(ctx context.Context, cmd *Command, out io.Writer) (int, error) {
	result, err := e.runner.Run(ctx, cmd, RunOptions{Stdout: out})
	if err != nil {
		return 0, err
	}
	if result.ExitCode != 0 {
		output := bytes.TrimSpace(append(result.Stdout, result.Stderr...))
		if len(output) > 0 {
			e.logger.Error(string(output))
		}
		return result.ExitCode, &ExecutionError{ExitCode: result.ExitCode}
	}
	return 0, nil
}
