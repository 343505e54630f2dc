// SPDX-License-Identifier: MPL-2.0

// Package containertest provides a recording fake for container engine processes.
//
// The fake follows the TestHelperProcess pattern: every spawned command re-executes
// the test binary, which prints the configured output and exits with the configured
// status. Packages using it must declare
//
//	func TestHelperProcess(t *testing.T) { containertest.HelperProcess() }
package containertest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"testing"
)

type (
	// MockCommandRecorder captures arguments passed to exec.Command for verification.
	MockCommandRecorder struct {
		mu          sync.Mutex
		invocations []MockInvocation

		// ExitCode is the exit code returned by every invocation (0 = success).
		ExitCode int
		// Stdout is written to the child's stdout.
		Stdout string
		// Stderr is written to the child's stderr.
		Stderr string
		// FailOnArg makes any invocation containing this exact argument exit
		// with FailExitCode instead of ExitCode.
		FailOnArg string
		// FailWhen, when set, makes matching invocations exit with FailExitCode.
		FailWhen func(name string, args []string) bool
		// FailExitCode is the status used for FailOnArg matches (default 1).
		FailExitCode int
	}

	// MockInvocation represents a single invocation of exec.Command.
	MockInvocation struct {
		// Name is the command name (e.g., "docker", "podman")
		Name string
		// Args are the arguments passed to the command
		Args []string
	}
)

// NewMockCommandRecorder creates a new recorder with default settings (success, no output).
func NewMockCommandRecorder() *MockCommandRecorder {
	return &MockCommandRecorder{FailExitCode: 1}
}

// ContextCommandFunc returns a function that can replace exec.CommandContext.
func (m *MockCommandRecorder) ContextCommandFunc(t *testing.T) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		m.mu.Lock()
		m.invocations = append(m.invocations, MockInvocation{Name: name, Args: slices.Clone(args)})
		m.mu.Unlock()

		exitCode := m.ExitCode
		if m.FailOnArg != "" && slices.Contains(args, m.FailOnArg) {
			exitCode = m.FailExitCode
		}
		if m.FailWhen != nil && m.FailWhen(name, args) {
			exitCode = m.FailExitCode
		}

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", exitCode),
			"GO_HELPER_STDOUT=" + m.Stdout,
			"GO_HELPER_STDERR=" + m.Stderr,
		}
		return cmd
	}
}

// Invocations returns a copy of every recorded invocation.
func (m *MockCommandRecorder) Invocations() []MockInvocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.invocations)
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *MockCommandRecorder) LastInvocation() *MockInvocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.invocations) == 0 {
		return nil
	}
	inv := m.invocations[len(m.invocations)-1]
	return &inv
}

// LastArgs returns the arguments from the most recent invocation.
func (m *MockCommandRecorder) LastArgs() []string {
	if inv := m.LastInvocation(); inv != nil {
		return inv.Args
	}
	return nil
}

// AssertCommandName verifies the last command name matches.
func (m *MockCommandRecorder) AssertCommandName(t *testing.T, expected string) {
	t.Helper()
	if inv := m.LastInvocation(); inv == nil {
		t.Errorf("expected command %q but no commands were invoked", expected)
	} else if inv.Name != expected {
		t.Errorf("expected command %q, got %q", expected, inv.Name)
	}
}

// AssertArgsContain verifies that the last invocation args contain the expected string.
func (m *MockCommandRecorder) AssertArgsContain(t *testing.T, expected string) {
	t.Helper()
	args := m.LastArgs()
	if !strings.Contains(strings.Join(args, " "), expected) {
		t.Errorf("expected args to contain %q, got: %v", expected, args)
	}
}

// AssertArgsNotContain verifies that the last invocation args do NOT contain the string.
func (m *MockCommandRecorder) AssertArgsNotContain(t *testing.T, unexpected string) {
	t.Helper()
	args := m.LastArgs()
	if strings.Contains(strings.Join(args, " "), unexpected) {
		t.Errorf("expected args to NOT contain %q, got: %v", unexpected, args)
	}
}

// AssertInvocationCount verifies the number of command invocations.
func (m *MockCommandRecorder) AssertInvocationCount(t *testing.T, expected int) {
	t.Helper()
	if got := len(m.Invocations()); got != expected {
		t.Errorf("expected %d invocations, got %d", expected, got)
	}
}

// HasArgPair checks if the last invocation contains a flag-value pair (e.g., "-t", "myimage").
func (m *MockCommandRecorder) HasArgPair(flag, value string) bool {
	args := m.LastArgs()
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

// HelperProcess is the body of TestHelperProcess. It is a no-op unless the
// test binary was re-executed by a recorder.
func HelperProcess() {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}
