package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdulhadi/ustaad/internal/domain"
	"github.com/abdulhadi/ustaad/internal/observability"
	"github.com/abdulhadi/ustaad/internal/subjects"
)

const (
	// apologyText is the fixed failure notice shown when the tutoring
	// service fails. The underlying error is logged, never displayed.
	apologyText = "معذرت، کچھ غلط ہو گیا ہے۔ براہ کرم دوبارہ کوشش کریں۔"

	welcomeFormat = "السلام علیکم **%s**! میں آپ کا **%s** کا استاد ہوں۔ آپ مجھ سے کوئی بھی سوال پوچھ سکتے ہیں۔"
)

// Manager drives one request/response cycle per send action. It owns
// the transcript, the in-flight flag and the pending input for the
// lifetime of a session; the presentation layer gets a read view and
// mutates pending input only through the Manager.
type Manager struct {
	mu sync.Mutex

	tutor    domain.TutorClient
	speech   domain.SpeechRecognizer
	files    domain.AttachmentReader
	identity domain.IdentityStore
	catalog  *subjects.Catalog

	now   func() time.Time
	newID func() domain.MessageID

	user       string
	subject    *domain.Subject
	transcript *Transcript

	pendingText       string
	pendingAttachment string
	inFlight          bool
	listening         bool
}

func NewManager(
	tutor domain.TutorClient,
	speech domain.SpeechRecognizer,
	files domain.AttachmentReader,
	identity domain.IdentityStore,
	catalog *subjects.Catalog,
) *Manager {
	m := &Manager{
		tutor:      tutor,
		speech:     speech,
		files:      files,
		identity:   identity,
		catalog:    catalog,
		now:        time.Now,
		newID:      func() domain.MessageID { return domain.MessageID(uuid.NewString()) },
		transcript: NewTranscript(),
	}

	if name, err := identity.Load(); err == nil && name != "" {
		m.user = name
	}

	return m
}

// ─────────────────────────────────────────────
// Identity lifecycle
// ─────────────────────────────────────────────

// LoggedIn reports whether a display name is set.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != ""
}

func (m *Manager) User() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) Login(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.identity.Save(name); err != nil {
		observability.Logger().Error("failed to persist identity", "error", err)
		return err
	}
	m.user = name
	return nil
}

// Logout clears the persisted identity and all session state.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearSessionLocked()
	m.user = ""

	if err := m.identity.Clear(); err != nil {
		observability.Logger().Error("failed to clear identity", "error", err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────
// Session lifecycle
// ─────────────────────────────────────────────

// SelectSubject starts a session for the given subject: the transcript
// is reset and the localized welcome message is appended as the first
// turn. Returns false when the id is not in the catalog.
func (m *Manager) SelectSubject(id domain.SubjectID) bool {
	subject, ok := m.catalog.Lookup(id)
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearSessionLocked()
	m.subject = subject
	m.transcript.Append(&domain.Message{
		ID:        m.newID(),
		Text:      fmt.Sprintf(welcomeFormat, m.user, subject.Name),
		Sender:    domain.SenderAI,
		CreatedAt: m.now(),
	})

	observability.WithFields("subject", subject.ID).Info("session started")
	return true
}

// BackToHome ends the session: transcript, pending input and pending
// attachment are all discarded, and any active dictation stops.
func (m *Manager) BackToHome() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearSessionLocked()
}

func (m *Manager) clearSessionLocked() {
	m.subject = nil
	m.transcript.Reset()
	m.pendingText = ""
	m.pendingAttachment = ""
	if m.listening {
		m.listening = false
		m.speech.Stop()
	}
}

func (m *Manager) Subject() *domain.Subject {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subject
}

// Messages returns a read-only snapshot of the transcript.
func (m *Manager) Messages() []*domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transcript.Messages()
}

func (m *Manager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// ─────────────────────────────────────────────
// Pending input
// ─────────────────────────────────────────────

func (m *Manager) SetInput(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingText = text
}

func (m *Manager) Input() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingText
}

// AppendDictated concatenates recognized speech onto the pending input,
// separated by a single space. It never replaces typed text.
func (m *Manager) AppendDictated(text string) {
	if text == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pendingText == "" {
		m.pendingText = text
	} else {
		m.pendingText = m.pendingText + " " + text
	}
}

// AttachFile reads the file and stores its data-URI encoding as the
// pending attachment. On a read failure the pending attachment is left
// untouched and the error is returned for the caller to surface.
func (m *Manager) AttachFile(path string) error {
	encoded, err := m.files.ReadAsDataURI(path)
	if err != nil {
		observability.Logger().Error("attachment read failed", "path", path, "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingAttachment = encoded
	return nil
}

func (m *Manager) ClearAttachment() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingAttachment = ""
}

func (m *Manager) PendingAttachment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingAttachment
}

// ─────────────────────────────────────────────
// Dictation
// ─────────────────────────────────────────────

func (m *Manager) Listening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listening
}

// ToggleDictation starts or stops speech capture. Returns false when
// the platform capability is absent. A start failure reverts to
// inactive without surfacing an error turn.
func (m *Manager) ToggleDictation() bool {
	if !m.speech.Available() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listening {
		m.listening = false
		m.speech.Stop()
		return true
	}

	err := m.speech.Start(
		func(text string) {
			m.AppendDictated(text)
			m.mu.Lock()
			m.listening = false
			m.mu.Unlock()
		},
		func(err error) {
			observability.Logger().Error("speech recognition error", "error", err)
			m.mu.Lock()
			m.listening = false
			m.mu.Unlock()
		},
		func() {
			m.mu.Lock()
			m.listening = false
			m.mu.Unlock()
		},
	)
	if err != nil {
		observability.Logger().Error("failed to start speech recognition", "error", err)
		m.listening = false
		return true
	}

	m.listening = true
	return true
}

// ─────────────────────────────────────────────
// Send cycle
// ─────────────────────────────────────────────

// TurnResult holds the two turns appended by one completed send cycle.
// Reply carries IsError when the service failed.
type TurnResult struct {
	User  *domain.Message
	Reply *domain.Message
}

// SendTurn runs one request/response cycle against the tutoring
// service using the pending input and attachment. It returns false
// without side effects when a precondition fails: nothing to send, no
// subject selected, or a send already in flight.
//
// The student's turn is appended and the pending fields cleared before
// the service call, so the turn shows immediately; the reply (or a
// fixed apology on failure) is appended when the call resolves. The
// in-flight flag excludes a second overlapping send and is released on
// every path.
func (m *Manager) SendTurn(ctx context.Context) (*TurnResult, bool) {
	m.mu.Lock()

	text := strings.TrimSpace(m.pendingText)
	if (text == "" && m.pendingAttachment == "") || m.inFlight || m.subject == nil {
		m.mu.Unlock()
		return nil, false
	}

	// Sending abandons any active dictation; partial recognition that
	// arrives later lands in the next pending input.
	if m.listening {
		m.listening = false
		m.speech.Stop()
	}

	subject := m.subject
	attachment := m.pendingAttachment

	// History is snapshotted before the new turn is appended: prior
	// turns travel as context, the turn being sent is the live prompt.
	history := slices.Collect(m.transcript.History())

	userMsg := &domain.Message{
		ID:         m.newID(),
		Text:       m.pendingText,
		Sender:     domain.SenderUser,
		CreatedAt:  m.now(),
		Attachment: attachment,
	}
	m.transcript.Append(userMsg)

	m.pendingText = ""
	m.pendingAttachment = ""
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	ctx = observability.WithTurnID(ctx, string(userMsg.ID))
	log := observability.LoggerFromContext(ctx).With("subject", subject.ID)
	log.Info("sending turn", "has_attachment", attachment != "")

	req, err := buildRequest(userMsg.Text, attachment, subject, history)
	if err == nil {
		var replyText string
		replyText, err = m.tutor.Reply(ctx, req)
		if err == nil {
			reply := m.appendReply(replyText, false)
			log.Info("turn completed")
			return &TurnResult{User: userMsg, Reply: reply}, true
		}
	}

	log.Error("tutoring service failed", "error", err)
	reply := m.appendReply(apologyText, true)
	return &TurnResult{User: userMsg, Reply: reply}, true
}

func (m *Manager) appendReply(text string, isError bool) *domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	reply := &domain.Message{
		ID:        m.newID(),
		Text:      text,
		Sender:    domain.SenderAI,
		CreatedAt: m.now(),
		IsError:   isError,
	}
	m.transcript.Append(reply)
	return reply
}

func buildRequest(text, attachment string, subject *domain.Subject, history []domain.HistoryEntry) (domain.TurnRequest, error) {
	if attachment != "" {
		return domain.NewImageTurn(text, domain.ParseDataURI(attachment), subject.Instruction, history)
	}
	return domain.NewTextTurn(text, subject.Instruction, history)
}
