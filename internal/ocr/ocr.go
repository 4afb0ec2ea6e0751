// Package ocr extracts plain text from receipt images. Engines wrap hosted
// vision models, the Azure Computer Vision API, or a local tesseract binary
// behind one interface; callers hand the text to the parsing pipeline and
// never see engine internals.
package ocr

import (
	"context"
	"strings"
)

// Language hints accepted by the engines.
const (
	LangJapanese = "ja"
	LangEnglish  = "en"
)

// Engine turns a receipt image into plain text.
type Engine interface {
	// Recognize extracts the printed text of a receipt image or PDF as-is,
	// one receipt row per line.
	Recognize(ctx context.Context, image []byte, contentType string) (string, error)
	// Close releases resources held by the engine.
	Close() error
}

// transcribePrompt is shared by the chat-model engines. Parsing happens
// locally, so the model is asked for a verbatim transcription and nothing
// else.
const transcribePrompt = `You are transcribing a retail receipt. Read every line of printed text in the image, top to bottom, and return it exactly as printed.

Rules:
- Output one receipt row per line of text, in the original order
- Keep the original language, characters, prices and dates exactly as printed
- Do not translate, summarize, annotate or reorder anything
- Do not use markdown code blocks
- If the image holds no readable text, return an empty response`

// promptFor appends a script hint for Japanese receipts, which helps smaller
// vision models pick the right character set.
func promptFor(lang string) string {
	if lang == LangJapanese {
		return transcribePrompt + "\nThe receipt is printed mostly in Japanese."
	}
	return transcribePrompt
}

// stripFences removes a wrapping markdown code fence, which chat models add
// despite instructions not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
