package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// Azure implements Engine using the Azure Computer Vision OCR API. Unlike the
// chat-model engines it returns positionally ordered text straight from the
// service, with no prompt in the loop.
type Azure struct {
	client  computervision.BaseClient
	lang    computervision.OcrLanguages
	enhance bool
}

// NewAzure creates an Azure engine against a Cognitive Services endpoint.
func NewAzure(endpoint, apiKey, lang string, enhance bool) (*Azure, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("azure api key is required")
	}

	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	ocrLang := computervision.OcrLanguagesEn
	if lang == LangJapanese {
		ocrLang = computervision.OcrLanguagesJa
	}

	return &Azure{
		client:  client,
		lang:    ocrLang,
		enhance: enhance,
	}, nil
}

// Recognize runs printed-text OCR and joins the result regions back into
// line-per-row text.
func (a *Azure) Recognize(ctx context.Context, image []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, _, err := prepareImage(image, contentType, a.enhance)
	if err != nil {
		return "", err
	}

	result, err := a.client.RecognizePrintedTextInStream(
		ctx,
		true, // detect orientation
		io.NopCloser(bytes.NewReader(data)),
		a.lang,
	)
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}

	return joinOCRResult(result), nil
}

// joinOCRResult flattens the region/line/word tree into plain text, one
// recognized line per row.
func joinOCRResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}

	var text strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			words := make([]string, 0, len(*line.Words))
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) == 0 {
				continue
			}
			text.WriteString(strings.Join(words, " "))
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String())
}

// Close is a no-op, the client holds no connection state.
func (a *Azure) Close() error {
	return nil
}
