package llm

import "github.com/abdulhadi/ustaad/internal/domain"

const baseSystemInstruction = `
You are a friendly, patient, and intelligent AI Tutor named "Abdul Hadi".
Your goal is to help students learn.
1. ALWAYS answer in Urdu unless the user explicitly asks for English.
2. When solving problems (especially Math/Science), DO NOT just give the final answer. Provide a step-by-step explanation of the method.
3. Be encouraging and polite.
4. Use simple language suitable for school students.
5. If the user uploads an image, analyze it carefully to solve the problem presented.
`

const (
	// defaultImagePrompt stands in when a turn carries an image but no
	// text.
	defaultImagePrompt = "براہ کرم اس تصویر کی وضاحت کریں اور حل کرنے میں مدد کریں۔"

	// emptyReplyFallback stands in when the service resolves without any
	// text.
	emptyReplyFallback = "معذرت، میں کوئی جواب تیار نہیں کر سکا۔"
)

// BuildSystemInstruction combines the shared tutor identity with the
// subject's instruction context.
func BuildSystemInstruction(req domain.TurnRequest) string {
	return baseSystemInstruction + "\n\nCurrent Subject Context: " + req.SystemInstruction
}

func promptText(req domain.TurnRequest) string {
	if req.Prompt == "" && req.Image != nil {
		return defaultImagePrompt
	}
	return req.Prompt
}
