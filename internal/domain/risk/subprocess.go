package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// SubprocessConfig configures a SubprocessScorer.
type SubprocessConfig struct {
	// Command is the executable to run, e.g. "python3".
	Command string
	// Args are passed ahead of the JSON payload, e.g. the script path.
	Args []string
	// Timeout bounds each invocation. Zero means 30s.
	Timeout time.Duration
	// MaxConcurrent bounds simultaneous scoring processes. Zero means 4.
	MaxConcurrent int
}

// SubprocessScorer runs the scoring engine as a one-shot external process
// per invocation. The feature vector is passed as a single JSON argument;
// the prediction is read from stdout, diagnostics from stderr, success is
// exit code 0. A semaphore bounds concurrent processes so a burst of
// assessments cannot fork without limit.
type SubprocessScorer struct {
	command string
	args    []string
	timeout time.Duration
	sem     chan struct{}
}

func NewSubprocessScorer(cfg SubprocessConfig) *SubprocessScorer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &SubprocessScorer{
		command: cfg.Command,
		args:    cfg.Args,
		timeout: timeout,
		sem:     make(chan struct{}, maxConcurrent),
	}
}

// Score serializes the feature vector, invokes the engine, and parses its
// response. The process is killed when the caller's context is cancelled or
// the timeout elapses, so abandoned requests leave no orphans. No retries:
// failures surface immediately.
func (s *SubprocessScorer) Score(ctx context.Context, features FeatureVector) (*PredictionResult, error) {
	payload, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("encode feature vector: %w", err)
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := make([]string, 0, len(s.args)+1)
	args = append(args, s.args...)
	args = append(args, string(payload))

	cmd := exec.CommandContext(ctx, s.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// The engine runs in its own process group and the whole group is
	// killed on cancellation. Killing only the direct child would leave
	// any workers the engine forked running, and a survivor holding the
	// stdout pipe open keeps Wait blocked past the deadline.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// Wait must return even if a descendant survives the group kill and
	// still holds the pipes.
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &PredictionError{
			Kind:   PredictionTimeout,
			Detail: fmt.Sprintf("scoring engine did not finish within %s", s.timeout),
		}
	}
	if ctx.Err() != nil {
		// Caller cancellation is not an engine failure.
		return nil, ctx.Err()
	}
	if runErr != nil {
		return nil, &PredictionError{
			Kind:   PredictionFailed,
			Detail: strings.TrimSpace(stderr.String()),
		}
	}

	var result PredictionResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil || result.RiskLevel == "" {
		return nil, &PredictionError{
			Kind:   PredictionParse,
			Detail: "scoring engine output is not a valid prediction",
			Output: stdout.String(),
		}
	}
	if result.RiskFactors == nil {
		result.RiskFactors = []RiskFactor{}
	}
	return &result, nil
}
