package harness

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Harness manages the test environment for sc-util
type Harness struct {
	t          *testing.T
	binaryPath string
	tempDir    string
}

// Result holds the output from running sc-util
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// New creates a new test harness
func New(t *testing.T) *Harness {
	t.Helper()

	// Create temp directory for this test
	tempDir, err := os.MkdirTemp("", "sc-util-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Symlinked temp dirs (macOS /var -> /private/var) would not match
	// the canonical paths sc-util prints.
	tempDir, err = filepath.EvalSymlinks(tempDir)
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	h := &Harness{
		t:       t,
		tempDir: tempDir,
	}

	h.buildBinary()

	return h
}

// buildBinary builds sc-util for testing
func (h *Harness) buildBinary() {
	h.t.Helper()

	// The test is run from somewhere inside the project, walk up to go.mod
	cwd, err := os.Getwd()
	if err != nil {
		h.t.Fatalf("Failed to get working directory: %v", err)
	}

	projectRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			h.t.Fatalf("Could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	h.binaryPath = filepath.Join(h.tempDir, "sc-util")
	goCache := filepath.Join(os.TempDir(), "sc-util-go-cache")

	cmd := exec.Command("go", "build", "-o", h.binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("GOCACHE=%s", goCache),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		h.t.Fatalf("Failed to build binary: %v\nOutput: %s", err, output)
	}
}

// TempDir returns the temporary directory for this test
func (h *Harness) TempDir() string {
	return h.tempDir
}

// HomeDir is the sandboxed $HOME sc-util runs with
func (h *Harness) HomeDir() string {
	return filepath.Join(h.tempDir, "home")
}

// CacheDir is the user cache root sc-util sees (SC_UTIL_CACHE_DIR)
func (h *Harness) CacheDir() string {
	return filepath.Join(h.tempDir, "cache")
}

// ConfigPath is where sc-util keeps its configuration inside the sandbox
func (h *Harness) ConfigPath() string {
	return filepath.Join(h.CacheDir(), "sc-util", "config.json")
}

// Run executes sc-util with the given arguments.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()
	return h.RunWithEnv(nil, args...)
}

// RunWithEnv executes sc-util with extra environment variables.
func (h *Harness) RunWithEnv(extraEnv map[string]string, args ...string) *Result {
	h.t.Helper()

	cmd := exec.Command(h.binaryPath, args...)

	// Set up environment
	env := []string{
		fmt.Sprintf("HOME=%s", h.HomeDir()),
		fmt.Sprintf("SC_UTIL_CACHE_DIR=%s", h.CacheDir()),
		"LANGUAGE=en",
		"LC_ALL=en_US.UTF-8",
	}

	// Copy minimal required environment variables
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "PATH=") {
			env = append(env, e)
		}
	}

	for k, v := range extraEnv {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			h.t.Logf("Run error: %v", err)
			result.ExitCode = -1
		}
	}

	return result
}

// Log dumps a result into the test log
func (h *Harness) Log(result *Result) {
	h.t.Helper()
	h.t.Logf("Exit code: %d", result.ExitCode)
	h.t.Logf("Stdout:\n%s", result.Stdout)
	h.t.Logf("Stderr:\n%s", result.Stderr)
}

// Cleanup removes temporary files
func (h *Harness) Cleanup() {
	os.RemoveAll(h.tempDir)
}
