package domain

// Message represents a single turn in the conversation (student or tutor).
// ID, Sender and CreatedAt never change after creation; the transcript
// they live in is append-only for the lifetime of a session.
type Message struct {
	ID        MessageID
	Text      string
	Sender    Sender
	CreatedAt Timestamp

	// Attachment is the data-URI encoded image carried by a student turn.
	// Ownership transfers to the Message when the turn is sent; empty for
	// turns without an image.
	Attachment string

	// IsError marks a locally synthesized failure notice. Error turns are
	// shown in the transcript but never sent back to the service as
	// conversation history.
	IsError bool
}

// Subject is a static catalog entry. Subjects are loaded at startup and
// immutable afterwards.
type Subject struct {
	ID   SubjectID `yaml:"id"`
	Name string    `yaml:"name"`

	// Instruction steers the tutoring service for this subject. It is
	// appended to the shared system instruction on every request.
	Instruction string `yaml:"instruction"`
}
