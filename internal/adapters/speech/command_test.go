package speech_test

import (
	"testing"
	"time"

	"github.com/abdulhadi/ustaad/internal/adapters/speech"
)

func TestAvailability(t *testing.T) {
	if speech.NewCommandRecognizer("", "ur-PK").Available() {
		t.Fatal("an empty command means the capability is absent")
	}
	if !speech.NewCommandRecognizer("transcribe", "ur-PK").Available() {
		t.Fatal("a configured command means the capability is present")
	}
}

func TestStartWithoutCommand(t *testing.T) {
	r := speech.NewCommandRecognizer("", "ur-PK")
	if err := r.Start(nil, nil, nil); err == nil {
		t.Fatal("expected Start to fail when the capability is absent")
	}
}

func TestCaptureDeliversTranscript(t *testing.T) {
	// echo prints its arguments, so the "transcript" is the language tag
	// the recognizer appends.
	r := speech.NewCommandRecognizer("echo", "ur-PK")

	results := make(chan string, 1)
	ended := make(chan struct{}, 1)

	err := r.Start(
		func(text string) { results <- text },
		func(err error) { t.Errorf("unexpected capture error: %v", err) },
		func() { ended <- struct{}{} },
	)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case got := <-results:
		if got != "ur-PK" {
			t.Fatalf("expected trimmed stdout as transcript, got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a result")
	}

	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the capture to end")
	}
}

func TestCaptureFailureReportsError(t *testing.T) {
	r := speech.NewCommandRecognizer("false", "ur-PK")

	errs := make(chan error, 1)
	ended := make(chan struct{}, 1)

	err := r.Start(
		func(string) { t.Error("no transcript expected from a failing command") },
		func(err error) { errs <- err },
		func() { ended <- struct{}{} },
	)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the capture error")
	}
	<-ended
}

func TestStopIsIdempotent(t *testing.T) {
	r := speech.NewCommandRecognizer("echo", "ur-PK")

	// Stopping an idle recognizer must be safe.
	r.Stop()
	r.Stop()
}

func TestStopKillsActiveCapture(t *testing.T) {
	// sleep treats the appended "language" as a second interval, so the
	// capture blocks until killed.
	r := speech.NewCommandRecognizer("sleep 60", "60")

	gotErr := make(chan error, 1)
	ended := make(chan struct{}, 1)

	err := r.Start(
		func(string) { t.Error("no transcript expected from a killed capture") },
		func(err error) { gotErr <- err },
		func() { ended <- struct{}{} },
	)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	r.Stop()

	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the killed capture to end")
	}

	// A Stop-initiated kill is a cancellation, not a failure.
	select {
	case err := <-gotErr:
		t.Fatalf("unexpected error callback after Stop: %v", err)
	default:
	}
}
