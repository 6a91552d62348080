package session

import (
	"iter"

	"github.com/abdulhadi/ustaad/internal/domain"
)

// Transcript is the append-only, insertion-ordered sequence of turns for
// one session. Append order equals display order. The Transcript does no
// locking of its own; the Manager owns it and serializes access.
type Transcript struct {
	msgs []*domain.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a turn at the end. Turns are never deduplicated or
// rewritten; the caller guarantees ID uniqueness within a session.
func (t *Transcript) Append(msg *domain.Message) {
	t.msgs = append(t.msgs, msg)
}

// Reset clears the transcript. Called on subject change, home return and
// logout.
func (t *Transcript) Reset() {
	t.msgs = nil
}

func (t *Transcript) Len() int {
	return len(t.msgs)
}

// Messages returns a copy of the turns in order, for read-only display.
func (t *Transcript) Messages() []*domain.Message {
	out := make([]*domain.Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

// History yields the prior turns as the tutoring service should see
// them: error-flagged turns are skipped so the service never receives
// locally synthesized failure text as context. The sequence is lazy and
// restartable.
func (t *Transcript) History() iter.Seq[domain.HistoryEntry] {
	msgs := t.msgs
	return func(yield func(domain.HistoryEntry) bool) {
		for _, m := range msgs {
			if m.IsError {
				continue
			}
			role := domain.RoleModel
			if m.Sender == domain.SenderUser {
				role = domain.RoleUser
			}
			if !yield(domain.HistoryEntry{Role: role, Text: m.Text}) {
				return
			}
		}
	}
}
