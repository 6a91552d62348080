package llm

import (
	"context"
	"fmt"

	"github.com/abdulhadi/ustaad/internal/domain"
)

// MockTutor is an offline TutorClient for development and tests.
type MockTutor struct{}

func NewMockTutor() *MockTutor {
	return &MockTutor{}
}

func (m *MockTutor) Reply(_ context.Context, req domain.TurnRequest) (string, error) {
	if req.Image != nil {
		return fmt.Sprintf("(mock) تصویر موصول ہوئی (%s)۔ سوال: %q", req.Image.MIMEType, promptText(req)), nil
	}
	return fmt.Sprintf("(mock) آپ نے پوچھا: %q — یہ ایک آزمائشی جواب ہے۔", req.Prompt), nil
}
