// Package probe performs webhook submissions: it validates the pending
// request, issues the single multipart POST, and assembles the WebhookResult
// from the classified response.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/probelabs/hookprobe/internal/classify"
	"github.com/probelabs/hookprobe/internal/domain"
	"github.com/probelabs/hookprobe/internal/logger"
	"github.com/probelabs/hookprobe/pkg/httpclient"
)

const defaultTimeout = 30 * time.Second

// Submitter issues webhook submissions over an injected transport.
type Submitter struct {
	client httpclient.Client
}

// NewSubmitter constructs a submitter with the provided HTTP client (or default).
func NewSubmitter(client httpclient.Client) *Submitter {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	return &Submitter{client: client}
}

// Submit validates req, posts the file, and classifies the response.
// Validation failures are reported synchronously before any network call.
// A transport rejection yields a NetworkError and no result.
func (s *Submitter) Submit(ctx context.Context, req domain.PendingRequest) (*domain.WebhookResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	resp, err := s.client.PostFile(ctx, req.TargetURL, req.FieldName(), req.File)
	if err != nil {
		return nil, &domain.NetworkError{URL: req.TargetURL, Err: err}
	}

	body := resp.Body()
	header := resp.Header()
	cls := classify.Response(header.Get("Content-Type"), header.Get("Content-Disposition"), body)

	// capture every response header; http.Header canonicalizes key case and
	// the last value wins on duplicates
	headers := make(map[string]string, len(header))
	for key, values := range header {
		if len(values) > 0 {
			headers[key] = values[len(values)-1]
		}
	}

	result := &domain.WebhookResult{
		RequestURL:        req.TargetURL,
		StatusCode:        resp.StatusCode(),
		Headers:           headers,
		Kind:              cls.Kind,
		SuggestedFileName: cls.FileName,
		ContentType:       cls.ContentType,
		Size:              int64(len(body)),
	}

	switch cls.Kind {
	case domain.KindBinary:
		result.Binary = body
	case domain.KindStructured:
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, &domain.ParseError{ContentType: cls.ContentType, Err: err}
		}
		result.Structured = parsed
	default:
		result.Text = string(body)
	}

	logger.DebugObj("submission resolved", "result_meta", map[string]any{
		"url":    req.TargetURL,
		"status": result.StatusCode,
		"kind":   result.Kind.String(),
		"size":   result.Size,
	})
	return result, nil
}

// Validate checks the pending request without touching the network.
func Validate(req domain.PendingRequest) error {
	if strings.TrimSpace(req.TargetURL) == "" {
		return &domain.ValidationError{Field: "url", Reason: "target URL is required"}
	}
	if req.File.Path == "" {
		return &domain.ValidationError{Field: "file", Reason: "no file selected"}
	}
	return nil
}

// LoadFileRef resolves a local path into a FileRef, deriving the upload name
// from the path and the declared MIME type from the extension, falling back
// to sniffing the file contents.
func LoadFileRef(path string) (domain.FileRef, error) {
	if strings.TrimSpace(path) == "" {
		return domain.FileRef{}, &domain.ValidationError{Field: "file", Reason: "no file selected"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.FileRef{}, &domain.ValidationError{Field: "file", Reason: err.Error()}
	}
	if info.IsDir() {
		return domain.FileRef{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s is a directory", path)}
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		if detected, err := mimetype.DetectFile(path); err == nil {
			contentType = detected.String()
		} else {
			contentType = "application/octet-stream"
		}
	}

	return domain.FileRef{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}
