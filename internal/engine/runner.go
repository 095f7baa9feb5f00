package engine

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts process execution so engine operations can be
// mocked in tests.
type CommandRunner interface {
	// Run executes a command, discarding output on success.
	Run(name string, args ...string) error
	// Output executes a command and returns its stdout.
	Output(name string, args ...string) ([]byte, error)
	// OutputInput executes a command with input on stdin and returns its
	// stdout.
	OutputInput(input string, name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes commands on the host.
type RealCommandRunner struct{}

// Run executes a command without capturing stdout.
func (r *RealCommandRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command %s failed: %w: %s", name, err, string(out))
	}
	return nil
}

// Output executes a command and returns its stdout. On failure the stderr
// text is folded into the returned error.
func (r *RealCommandRunner) Output(name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("command %s failed: %w: %s", name, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// OutputInput executes a command with input via stdin and returns its
// stdout.
func (r *RealCommandRunner) OutputInput(input string, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("command %s failed: %w: %s", name, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
