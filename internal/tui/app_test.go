package tui

import (
	"path/filepath"
	"testing"

	"github.com/abdulhadi/ustaad/internal/adapters/attachment"
	"github.com/abdulhadi/ustaad/internal/adapters/identity"
	"github.com/abdulhadi/ustaad/internal/adapters/llm"
	"github.com/abdulhadi/ustaad/internal/app/session"
	"github.com/abdulhadi/ustaad/internal/subjects"
)

// stubRecognizer hands captured callbacks to the test so recognition
// results can be delivered on demand, after Start has returned.
type stubRecognizer struct {
	onResult func(string)
	onErr    func(error)
	onEnd    func()
}

func (s *stubRecognizer) Available() bool { return true }

func (s *stubRecognizer) Start(onResult func(string), onErr func(error), onEnd func()) error {
	s.onResult = onResult
	s.onErr = onErr
	s.onEnd = onEnd
	return nil
}

func (s *stubRecognizer) Stop() {}

func newDictationModel(t *testing.T) (*Model, *stubRecognizer) {
	t.Helper()

	catalog, err := subjects.LoadDefault("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	rec := &stubRecognizer{}
	mgr := session.NewManager(
		llm.NewMockTutor(),
		rec,
		attachment.NewReader(),
		identity.NewFileStore(filepath.Join(t.TempDir(), "identity.json")),
		catalog,
	)

	m := NewModel(mgr, catalog)
	m.screen = screenChat
	return m, rec
}

func TestDictationAppendsToTypedText(t *testing.T) {
	m, rec := newDictationModel(t)
	m.input.SetValue("لکھا ہوا سوال")

	if cmd := m.toggleDictation(); cmd == nil {
		t.Fatal("expected the dictation tick to start")
	}

	rec.onResult("بولا ہوا")
	m.Update(dictationTickMsg{})

	want := "لکھا ہوا سوال بولا ہوا"
	if got := m.input.Value(); got != want {
		t.Fatalf("typed text must be extended, not replaced: got %q, want %q", got, want)
	}
	if got := m.mgr.Input(); got != want {
		t.Fatalf("manager input out of step: got %q, want %q", got, want)
	}
}

func TestTypingDuringDictationSurvives(t *testing.T) {
	m, rec := newDictationModel(t)
	m.input.SetValue("پہلا")

	if cmd := m.toggleDictation(); cmd == nil {
		t.Fatal("expected the dictation tick to start")
	}

	// The student keeps typing before the transcript arrives; a tick
	// carries the new text into the manager.
	m.input.SetValue("پہلا دوسرا")
	m.Update(dictationTickMsg{})

	rec.onResult("بولا")
	m.Update(dictationTickMsg{})

	want := "پہلا دوسرا بولا"
	if got := m.input.Value(); got != want {
		t.Fatalf("mid-capture typing must survive: got %q, want %q", got, want)
	}
}

func TestBareAttachCommandIsNotSent(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.mgr.SelectSubject("math")
	before := len(m.mgr.Messages())

	for _, value := range []string{"/attach", "/attach\t"} {
		m.notice = ""
		m.input.SetValue(value)
		if cmd := m.submit(); cmd != nil {
			t.Fatalf("%q must not start a send", value)
		}
		if got := len(m.mgr.Messages()); got != before {
			t.Fatalf("%q must not reach the transcript, got %d messages", value, got)
		}
		if m.notice == "" {
			t.Fatalf("%q should surface a usage notice", value)
		}
		if m.input.Value() != "" {
			t.Fatalf("input must be reset after %q", value)
		}
	}
}

func TestAttachCommandToleratesTabs(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.mgr.SelectSubject("math")
	before := len(m.mgr.Messages())

	m.input.SetValue("/attach\tno-such-file.png")
	if cmd := m.submit(); cmd != nil {
		t.Fatal("an attach command must never start a send")
	}
	if got := len(m.mgr.Messages()); got != before {
		t.Fatalf("attach must not reach the transcript, got %d messages", got)
	}
	if m.notice == "" {
		t.Fatal("a failed read should surface a notice")
	}
}
