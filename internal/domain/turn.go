package domain

import (
	"errors"
	"strings"
)

var ErrEmptyTurn = errors.New("turn needs text or an image")

// HistoryEntry is one prior turn as the tutoring service sees it.
type HistoryEntry struct {
	Role Role
	Text string
}

// ImagePayload is a raw base64 image ready for transmission, with the
// data-URI prefix already stripped.
type ImagePayload struct {
	MIMEType string
	Data     string
}

// TurnRequest is the outbound request for one conversation turn. A nil
// Image means a text-only turn; constructors validate the two variants
// so an empty request can not be assembled ad hoc.
type TurnRequest struct {
	Prompt            string
	Image             *ImagePayload
	SystemInstruction string
	History           []HistoryEntry
}

// NewTextTurn builds a text-only request.
func NewTextTurn(prompt, instruction string, history []HistoryEntry) (TurnRequest, error) {
	if prompt == "" {
		return TurnRequest{}, ErrEmptyTurn
	}
	return TurnRequest{
		Prompt:            prompt,
		SystemInstruction: instruction,
		History:           history,
	}, nil
}

// ParseDataURI splits a data-URI encoded attachment into its MIME type
// and raw base64 payload. A string without a data-URI prefix is treated
// as raw base64 with the original upload pipeline's image/jpeg
// assumption.
func ParseDataURI(s string) ImagePayload {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return ImagePayload{MIMEType: "image/jpeg", Data: s}
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return ImagePayload{MIMEType: "image/jpeg", Data: rest}
	}
	mimeType, _, _ := strings.Cut(meta, ";")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return ImagePayload{MIMEType: mimeType, Data: data}
}

// NewImageTurn builds a text-plus-image request. Prompt may be empty;
// the client substitutes a default describe-this-image prompt.
func NewImageTurn(prompt string, image ImagePayload, instruction string, history []HistoryEntry) (TurnRequest, error) {
	if image.Data == "" {
		return TurnRequest{}, ErrEmptyTurn
	}
	if image.MIMEType == "" {
		image.MIMEType = "image/jpeg"
	}
	return TurnRequest{
		Prompt:            prompt,
		Image:             &image,
		SystemInstruction: instruction,
		History:           history,
	}, nil
}
