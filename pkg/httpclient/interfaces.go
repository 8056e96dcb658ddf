package httpclient

import (
	"context"
	"net/http"

	"github.com/probelabs/hookprobe/internal/domain"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	// PostFile issues one multipart/form-data POST carrying file as the sole
	// part under the given field name.
	PostFile(ctx context.Context, url, field string, file domain.FileRef) (Response, error)
}
