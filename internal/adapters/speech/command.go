// Package speech bridges an external speech-to-text capability behind
// the narrow recognizer port. The capability may be absent; callers must
// check Available before Start.
package speech

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// CommandRecognizer shells out to a configured transcriber command for a
// single-utterance, final-results-only capture. The command receives the
// target language as its last argument, records one utterance from the
// microphone and prints the transcript to stdout.
type CommandRecognizer struct {
	command  string
	language string

	mu      sync.Mutex
	running *exec.Cmd
	stopped bool
}

func NewCommandRecognizer(command, language string) *CommandRecognizer {
	return &CommandRecognizer{
		command:  command,
		language: language,
	}
}

func (c *CommandRecognizer) Available() bool {
	return strings.TrimSpace(c.command) != ""
}

// Start launches one capture. Launch failures are reported
// synchronously; once the command is running, the callbacks fire from a
// background goroutine when it finishes: onResult with the trimmed
// transcript when one was produced, onErr on a capture failure, and
// onEnd in every case.
func (c *CommandRecognizer) Start(onResult func(string), onErr func(error), onEnd func()) error {
	fields := strings.Fields(c.command)
	if len(fields) == 0 {
		return fmt.Errorf("speech capability is not configured")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running != nil {
		return fmt.Errorf("capture already active")
	}

	args := append(fields[1:], c.language)
	cmd := exec.Command(fields[0], args...)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting transcriber: %w", err)
	}

	c.running = cmd
	c.stopped = false

	go func() {
		err := cmd.Wait()

		c.mu.Lock()
		wasStopped := c.stopped
		c.running = nil
		c.stopped = false
		c.mu.Unlock()

		if err != nil {
			// A Stop-initiated kill is a cancellation, not a failure.
			if !wasStopped {
				onErr(err)
			}
			onEnd()
			return
		}

		if text := strings.TrimSpace(out.String()); text != "" {
			onResult(text)
		}
		onEnd()
	}()

	return nil
}

// Stop ends an active capture. Idempotent; a capture that already ended
// is a no-op.
func (c *CommandRecognizer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running == nil || c.running.Process == nil {
		return
	}
	c.stopped = true
	_ = c.running.Process.Kill()
}
