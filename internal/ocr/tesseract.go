package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Tesseract implements Engine by shelling out to a local tesseract binary.
// It needs no network or API key, which makes it the fallback engine, though
// the jpn traineddata must be installed for Japanese receipts.
type Tesseract struct {
	binary  string
	lang    string
	enhance bool
}

// NewTesseract creates a Tesseract engine. The binary is resolved via PATH
// when no explicit path is given.
func NewTesseract(binary, lang string, enhance bool) (*Tesseract, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("tesseract binary not found: %w", err)
	}

	tessLang := "eng"
	if lang == LangJapanese {
		tessLang = "jpn"
	}

	return &Tesseract{
		binary:  binary,
		lang:    tessLang,
		enhance: enhance,
	}, nil
}

// Recognize writes the prepared image to a temp file and reads tesseract's
// stdout.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	data, _, err := prepareImage(image, contentType, t.enhance)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing temp image: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.binary, f.Name(), "stdout", "-l", t.lang)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("running tesseract: %s", bytes.TrimSpace(exitErr.Stderr))
		}
		return "", fmt.Errorf("running tesseract: %w", err)
	}

	return string(out), nil
}

// Close is a no-op, each run is a fresh process.
func (t *Tesseract) Close() error {
	return nil
}
