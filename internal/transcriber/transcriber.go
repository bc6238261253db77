package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

type speechToTextResponse struct {
	Text *string `json:"text"`
}

func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	text, err := t.transcribe(ctx, audioPath)
	if err != nil {
		t.logger.Error(ctx, "Transcription failed: %v", err)
		return "", err
	}

	t.logger.Info(ctx, "Transcribe: Done (%d characters)", len(text))
	return text, nil
}

func (t *implTranscriber) transcribe(ctx context.Context, audioPath string) (string, error) {
	contentType := t.contentType
	if contentType == "" {
		detected, err := DetectContentType(audioPath)
		if err != nil {
			return "", &Error{Op: "detect content type", Err: err}
		}
		contentType = detected
	}

	body, formType, err := t.buildForm(audioPath, contentType)
	if err != nil {
		return "", &Error{Op: "build request", Err: err}
	}

	url := strings.TrimRight(t.baseURL, "/") + speechToTextPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", &Error{Op: "build request", Err: err}
	}
	req.Header.Set("xi-api-key", t.apiKey)
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Accept", "application/json")

	t.logger.Info(ctx, "Uploading %s (%s) with model %s", filepath.Base(audioPath), contentType, t.modelID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Op:         "request",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var payload speechToTextResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", &Error{Op: "decode response", Err: fmt.Errorf("%w: %s", err, string(respBody))}
	}

	if payload.Text == nil {
		t.logger.Warn(ctx, "Speech-to-text response has no text field")
		return "", nil
	}
	return *payload.Text, nil
}

// buildForm writes the model_id field and the file part. The file part
// carries contentType instead of the application/octet-stream default of
// multipart.Writer.CreateFormFile.
func (t *implTranscriber) buildForm(audioPath, contentType string) (*bytes.Buffer, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model_id", t.modelID); err != nil {
		return nil, "", fmt.Errorf("write model_id field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(audioPath))))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy audio data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
