package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type fakeRunner struct {
	result RunResult
	err    error
	ran    *Command
}

func (f *fakeRunner) Run(_ context.Context, cmd *Command, opts RunOptions) (RunResult, error) {
	f.ran = cmd
	if opts.Stdout != nil {
		_, _ = opts.Stdout.Write(f.result.Stdout)
	}
	return f.result, f.err
}

func newTestLogger() (logrus.FieldLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	return logger, &buf
}

func TestCommandBuilder(t *testing.T) {
	cmd := New("/usr/local/bin/cosign").Arg("version").Args("--json", "--short")

	if cmd.Executable() != "/usr/local/bin/cosign" {
		t.Fatalf("unexpected executable %q", cmd.Executable())
	}
	args := cmd.Arguments()
	if len(args) != 3 || args[0] != "version" || args[2] != "--short" {
		t.Fatalf("unexpected arguments %v", args)
	}

	args[0] = "mutated"
	if cmd.Arguments()[0] != "version" {
		t.Fatal("Arguments must return a copy")
	}
}

func TestExecuteCapturingSuccess(t *testing.T) {
	logger, _ := newTestLogger()
	runner := &fakeRunner{result: RunResult{Stdout: []byte("cosign version v1.4.1\n")}}
	executor := NewExecutor(logger, runner)

	var out bytes.Buffer
	exit, err := executor.ExecuteCapturing(context.Background(), New("cosign").Arg("version"), &out)
	if err != nil {
		t.Fatalf("ExecuteCapturing: %v", err)
	}
	if exit != 0 {
		t.Fatalf("expected exit 0, got %d", exit)
	}
	if out.String() != "cosign version v1.4.1\n" {
		t.Fatalf("captured output %q", out.String())
	}
}

func TestExecuteCapturingNonZeroExit(t *testing.T) {
	logger, logs := newTestLogger()
	runner := &fakeRunner{result: RunResult{Stderr: []byte("boom\n"), ExitCode: 3}}
	executor := NewExecutor(logger, runner)

	exit, err := executor.ExecuteCapturing(context.Background(), New("cosign").Arg("version"), io.Discard)
	if exit != 3 {
		t.Fatalf("expected exit 3, got %d", exit)
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) || execErr.ExitCode != 3 {
		t.Fatalf("expected ExecutionError with code 3, got %v", err)
	}
	if !bytes.Contains(logs.Bytes(), []byte("boom")) {
		t.Fatalf("expected captured output in error log, got %q", logs.String())
	}
}

func TestExecuteCapturingSpawnFailure(t *testing.T) {
	logger, _ := newTestLogger()
	spawnErr := errors.New("no such file")
	executor := NewExecutor(logger, &fakeRunner{err: spawnErr})

	_, err := executor.ExecuteCapturing(context.Background(), New("missing"), io.Discard)
	if !errors.Is(err, spawnErr) {
		t.Fatalf("expected spawn error, got %v", err)
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	runner := ExecRunner{}
	result, err := runner.Run(context.Background(), New("sh").Args("-c", "echo out; exit 7"), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 7 {
		t.Fatalf("expected exit 7, got %d", result.ExitCode)
	}
	if !bytes.Contains(result.Stdout, []byte("out")) {
		t.Fatalf("expected stdout captured, got %q", result.Stdout)
	}
}
