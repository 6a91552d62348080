package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/abdulhadi/ustaad/internal/domain"
)

// transcriptRenderer turns the manager's read view into viewport
// content. Tutor turns are markdown and go through glamour; student
// turns render verbatim.
type transcriptRenderer struct {
	theme    theme
	width    int
	markdown *glamour.TermRenderer
}

func newTranscriptRenderer(th theme, width int) *transcriptRenderer {
	r := &transcriptRenderer{theme: th, width: width}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		r.markdown = md
	}
	return r
}

func (r *transcriptRenderer) renderAll(msgs []*domain.Message, user string) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(r.renderMessage(m, user))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *transcriptRenderer) renderMessage(m *domain.Message, user string) string {
	var b strings.Builder

	switch {
	case m.IsError:
		b.WriteString(r.theme.aiLabel.Render("استاد"))
		b.WriteString("\n")
		b.WriteString(r.theme.errText.Render(m.Text))
	case m.Sender == domain.SenderUser:
		label := user
		if label == "" {
			label = "آپ"
		}
		b.WriteString(r.theme.userLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.Text)
		if m.Attachment != "" {
			b.WriteString("\n")
			b.WriteString(r.theme.dim.Render("📎 تصویر منسلک"))
		}
	default:
		b.WriteString(r.theme.aiLabel.Render("استاد"))
		b.WriteString("\n")
		b.WriteString(r.renderMarkdown(m.Text))
	}

	b.WriteString("\n")
	return b.String()
}

func (r *transcriptRenderer) renderMarkdown(text string) string {
	if r.markdown == nil {
		return text
	}
	out, err := r.markdown.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
