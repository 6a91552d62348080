// Package tui is the terminal presentation layer. It holds a read view
// of the conversation and the pending input controls; all session state
// lives in the manager.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abdulhadi/ustaad/internal/app/session"
	"github.com/abdulhadi/ustaad/internal/subjects"
)

const (
	appName          = "Abdul Hadi"
	homeGreeting     = "خوش آمدید! آج آپ کیا پڑھنا چاہیں گے؟"
	chatPlaceholder  = "اپنا سوال یہاں لکھیں یا /attach سے تصویر لگائیں…"
	loginPlaceholder = "اپنا نام لکھیں اور Enter دبائیں"
	listeningHint    = "سن رہا ہوں…"
	thinkingHint     = "سوچ رہا ہے…"
	noSpeechNotice   = "اسپیچ ریکگنیشن کی سہولت دستیاب نہیں ہے۔"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type screen int

const (
	screenLogin screen = iota
	screenHome
	screenChat
)

type turnDoneMsg struct {
	res  *session.TurnResult
	sent bool
}

type spinTickMsg struct{}
type dictationTickMsg struct{}

type Model struct {
	mgr     *session.Manager
	catalog *subjects.Catalog
	theme   theme

	width  int
	height int
	ready  bool

	screen        screen
	nameInput     textinput.Model
	subjectCursor int

	input    textarea.Model
	chatVP   viewport.Model
	renderer *transcriptRenderer

	sending    bool
	spinnerPos int
	notice     string

	// dictSynced is the last input value exchanged with the manager
	// while dictation is active, so typing and recognized speech can be
	// merged without one overwriting the other.
	dictSynced string
}

func NewModel(mgr *session.Manager, catalog *subjects.Catalog) *Model {
	ni := textinput.New()
	ni.Placeholder = loginPlaceholder
	ni.CharLimit = 40
	ni.Focus()

	ta := textarea.New()
	ta.Placeholder = chatPlaceholder
	ta.CharLimit = 4000
	ta.SetHeight(1)
	ta.Prompt = " "
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	start := screenLogin
	if mgr.LoggedIn() {
		start = screenHome
	}

	return &Model{
		mgr:       mgr,
		catalog:   catalog,
		theme:     defaultTheme(),
		screen:    start,
		nameInput: ni,
		input:     ta,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer = newTranscriptRenderer(m.theme, max(20, m.width-4))
		if !m.ready {
			m.chatVP = viewport.New(m.width, m.chatHeight())
			m.ready = true
		} else {
			m.chatVP.Width = m.width
			m.chatVP.Height = m.chatHeight()
		}
		m.input.SetWidth(max(20, m.width-4))
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case turnDoneMsg:
		m.sending = false
		m.refreshTranscript()
		return m, nil

	case spinTickMsg:
		if !m.sending {
			return m, nil
		}
		m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
		return m, tick(120*time.Millisecond, spinTickMsg{})

	case dictationTickMsg:
		// Keep the textarea and the manager's pending input in step
		// while the capture is active, and once more when it ends. A
		// recognized transcript is appended by the manager, so it is
		// mirrored out; anything typed meanwhile is pushed in. Typed
		// text is never replaced, only extended.
		if mgrVal := m.mgr.Input(); mgrVal != m.dictSynced {
			m.input.SetValue(mgrVal)
			m.input.CursorEnd()
			m.dictSynced = mgrVal
		} else if cur := m.input.Value(); cur != mgrVal {
			m.mgr.SetInput(cur)
			m.dictSynced = cur
		}
		if m.mgr.Listening() {
			return m, tick(200*time.Millisecond, dictationTickMsg{})
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		if msg.String() == "enter" {
			if err := m.mgr.Login(m.nameInput.Value()); err == nil {
				m.screen = screenHome
				m.notice = ""
			}
			return m, nil
		}

	case screenHome:
		switch msg.String() {
		case "up", "k":
			if m.subjectCursor > 0 {
				m.subjectCursor--
			}
			return m, nil
		case "down", "j":
			if m.subjectCursor < m.catalog.Len()-1 {
				m.subjectCursor++
			}
			return m, nil
		case "enter":
			subject := m.catalog.All()[m.subjectCursor]
			if m.mgr.SelectSubject(subject.ID) {
				m.screen = screenChat
				m.notice = ""
				m.input.Reset()
				m.input.Focus()
				m.refreshTranscript()
			}
			return m, textarea.Blink
		case "ctrl+l":
			if err := m.mgr.Logout(); err == nil {
				m.screen = screenLogin
				m.nameInput.Reset()
				m.nameInput.Focus()
			}
			return m, textinput.Blink
		}

	case screenChat:
		switch msg.String() {
		case "esc":
			if !m.sending {
				m.mgr.BackToHome()
				m.screen = screenHome
				m.notice = ""
				m.input.Reset()
			}
			return m, nil
		case "ctrl+r":
			return m, m.toggleDictation()
		case "enter":
			return m, m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.chatVP, cmd = m.chatVP.Update(msg)
			return m, cmd
		}
	}

	return m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case screenChat:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submit handles the enter key in the chat: slash commands run locally,
// anything else becomes a send.
func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())

	fields := strings.Fields(value)
	command := ""
	if len(fields) > 0 {
		command = fields[0]
	}

	switch {
	case command == "/attach":
		path := strings.TrimSpace(strings.TrimPrefix(value, command))
		if path == "" {
			m.notice = "استعمال: /attach <فائل>"
		} else if err := m.mgr.AttachFile(path); err != nil {
			m.notice = fmt.Sprintf("تصویر نہیں پڑھی جا سکی: %s", path)
		} else {
			m.notice = ""
		}
		m.input.Reset()
		return nil

	case value == "/clear":
		m.mgr.ClearAttachment()
		m.notice = ""
		m.input.Reset()
		return nil

	case value == "/mic":
		m.input.Reset()
		return m.toggleDictation()
	}

	if m.sending {
		return nil
	}

	m.mgr.SetInput(m.input.Value())
	m.input.Reset()
	m.sending = true
	m.refreshTranscript()

	send := func() tea.Msg {
		res, sent := m.mgr.SendTurn(context.Background())
		return turnDoneMsg{res: res, sent: sent}
	}
	return tea.Batch(send, tick(120*time.Millisecond, spinTickMsg{}))
}

func (m *Model) toggleDictation() tea.Cmd {
	// The manager appends recognized speech to its own pending input,
	// so the textarea contents must be handed over before the capture
	// starts or the student's typed text would not survive.
	m.mgr.SetInput(m.input.Value())

	if !m.mgr.ToggleDictation() {
		m.notice = noSpeechNotice
		return nil
	}
	m.notice = ""
	if m.mgr.Listening() {
		m.dictSynced = m.mgr.Input()
		return tick(200*time.Millisecond, dictationTickMsg{})
	}
	return nil
}

func (m *Model) refreshTranscript() {
	if !m.ready || m.renderer == nil {
		return
	}
	m.chatVP.SetContent(m.renderer.renderAll(m.mgr.Messages(), m.mgr.User()))
	m.chatVP.GotoBottom()
}

func (m *Model) chatHeight() int {
	// header + input box + status line
	return max(3, m.height-6)
}

// ─────────────────────────────────────────────
// Views
// ─────────────────────────────────────────────

func (m *Model) View() string {
	if !m.ready {
		return "…"
	}

	switch m.screen {
	case screenLogin:
		return m.loginView()
	case screenHome:
		return m.homeView()
	default:
		return m.chatView()
	}
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(m.theme.header.Render(appName))
	b.WriteString("\n\n")
	b.WriteString(m.theme.accent.Render("السلام علیکم!"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.inputBox.Width(max(24, m.width/2)).Render(m.nameInput.View()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.dim.Render("Ctrl+C: بند کریں"))
	return b.String()
}

func (m *Model) homeView() string {
	var b strings.Builder
	b.WriteString(m.theme.header.Render(fmt.Sprintf("%s — %s", appName, m.mgr.User())))
	b.WriteString("\n\n")
	b.WriteString(homeGreeting)
	b.WriteString("\n\n")

	for i, s := range m.catalog.All() {
		line := s.Name
		if i == m.subjectCursor {
			b.WriteString(m.theme.selected.Render("‹ " + line + " ›"))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.dim.Render("↑/↓: منتخب کریں · Enter: شروع کریں · Ctrl+L: لاگ آؤٹ"))
	return b.String()
}

func (m *Model) chatView() string {
	subject := m.mgr.Subject()
	title := appName
	if subject != nil {
		title = subject.Name
	}

	var b strings.Builder
	b.WriteString(m.theme.header.Render(title))
	b.WriteString("\n")
	b.WriteString(m.chatVP.View())
	b.WriteString("\n")
	b.WriteString(m.theme.inputBox.Width(max(24, m.width-2)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) statusLine() string {
	var parts []string

	switch {
	case m.sending:
		parts = append(parts, m.theme.accent.Render(spinnerFrames[m.spinnerPos]+" "+thinkingHint))
	case m.mgr.Listening():
		parts = append(parts, m.theme.accent.Render("🎤 "+listeningHint))
	}
	if m.mgr.PendingAttachment() != "" {
		parts = append(parts, m.theme.notice.Render("📎 تصویر تیار ہے (/clear سے ہٹائیں)"))
	}
	if m.notice != "" {
		parts = append(parts, m.theme.notice.Render(m.notice))
	}
	parts = append(parts, m.theme.dim.Render("Enter: بھیجیں · Ctrl+R: بولیں · Esc: ہوم"))

	return strings.Join(parts, "  ")
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Run starts the terminal UI and blocks until the user quits.
func Run(mgr *session.Manager, catalog *subjects.Catalog) error {
	p := tea.NewProgram(NewModel(mgr, catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
