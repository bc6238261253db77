package transcriber

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var extensionFallback = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".webm": "audio/webm",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// DetectContentType resolves the MIME type of an audio file from its
// extension, falling back to content sniffing. Non audio/video types are
// rejected so a mislabelled upload fails before it reaches the provider.
func DetectContentType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	contentType := extensionFallback[ext]
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		sniffed, err := sniff(path)
		if err != nil {
			return "", err
		}
		contentType = sniffed
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("parse content type %q: %w", contentType, err)
	}

	if !strings.HasPrefix(mediaType, "audio/") && !strings.HasPrefix(mediaType, "video/") {
		return "", fmt.Errorf("unsupported audio content type %s for %s", mediaType, filepath.Base(path))
	}
	return mediaType, nil
}

func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	sample := make([]byte, 512)
	n, err := f.Read(sample)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read audio sample: %w", err)
	}

	return http.DetectContentType(sample[:n]), nil
}
