package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abdulhadi/ustaad/internal/adapters/attachment"
	"github.com/abdulhadi/ustaad/internal/adapters/identity"
	"github.com/abdulhadi/ustaad/internal/adapters/llm"
	"github.com/abdulhadi/ustaad/internal/adapters/speech"
	"github.com/abdulhadi/ustaad/internal/app/session"
	"github.com/abdulhadi/ustaad/internal/domain"
	"github.com/abdulhadi/ustaad/internal/subjects"
)

func plainRenderer() *transcriptRenderer {
	// No glamour renderer: markdown falls back to verbatim text, which
	// keeps assertions independent of terminal styling.
	return &transcriptRenderer{theme: defaultTheme(), width: 80}
}

func TestRenderUserMessageShowsAttachmentMarker(t *testing.T) {
	r := plainRenderer()

	out := r.renderMessage(&domain.Message{
		Sender:     domain.SenderUser,
		Text:       "یہ حل کریں",
		Attachment: "data:image/png;base64,QUJD",
	}, "Ali")

	if !strings.Contains(out, "Ali") || !strings.Contains(out, "یہ حل کریں") {
		t.Fatalf("expected the student label and text, got %q", out)
	}
	if !strings.Contains(out, "تصویر منسلک") {
		t.Fatalf("expected the attachment marker, got %q", out)
	}
}

func TestRenderErrorMessageUsesPlainText(t *testing.T) {
	r := plainRenderer()

	out := r.renderMessage(&domain.Message{
		Sender:  domain.SenderAI,
		Text:    "معذرت، کچھ غلط ہو گیا ہے۔",
		IsError: true,
	}, "Ali")

	if !strings.Contains(out, "معذرت") {
		t.Fatalf("expected the apology text, got %q", out)
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()

	catalog, err := subjects.LoadDefault("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	mgr := session.NewManager(
		llm.NewMockTutor(),
		speech.NewCommandRecognizer("", "ur-PK"),
		attachment.NewReader(),
		identity.NewFileStore(filepath.Join(t.TempDir(), "identity.json")),
		catalog,
	)
	return NewModel(mgr, catalog)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenHome

	m.handleKey(keyMsg("k"))
	if m.subjectCursor != 0 {
		t.Fatalf("cursor must not go above the first subject, got %d", m.subjectCursor)
	}

	for range 20 {
		m.handleKey(keyMsg("j"))
	}
	if m.subjectCursor != m.catalog.Len()-1 {
		t.Fatalf("cursor must stop at the last subject, got %d", m.subjectCursor)
	}
}

func TestDictationToggleWithoutCapability(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	if cmd := m.toggleDictation(); cmd != nil {
		t.Fatal("no tick should start when the capability is absent")
	}
	if m.notice == "" {
		t.Fatal("expected a blocking notice when dictation is unavailable")
	}
}
