package domain

import "context"

// TutorClient defines how the core application talks to the tutoring
// service. The request carries everything the service needs: the live
// prompt, an optional image, the subject instruction and prior turns.
type TutorClient interface {
	Reply(ctx context.Context, req TurnRequest) (string, error)
}

// SpeechRecognizer wraps a dictation capability that may be absent on
// the platform. Start begins a single-utterance capture and reports the
// final transcript through onResult; onEnd fires when the capture stops
// for any reason. Stop is idempotent.
//
// Implementations must deliver the callbacks asynchronously, never from
// inside Start itself: callers may hold session state locks across the
// Start call, and the callbacks re-enter that state.
type SpeechRecognizer interface {
	Available() bool
	Start(onResult func(text string), onErr func(error), onEnd func()) error
	Stop()
}

// AttachmentReader converts a user-selected file into a transportable
// data-URI encoded string.
type AttachmentReader interface {
	ReadAsDataURI(path string) (string, error)
}

// IdentityStore persists the single logged-in display name. Load returns
// an empty string when nobody is logged in.
type IdentityStore interface {
	Load() (string, error)
	Save(name string) error
	Clear() error
}
