package domain

// Domain contains core models shared across the probe pipeline.

// FileRef describes the user-selected file to upload: where it lives on disk
// plus the name, size, and declared MIME type sent with the multipart part.
type FileRef struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// PendingRequest is one prepared submission: the target webhook URL and the
// file to post. It is never mutated once a submission is in flight.
type PendingRequest struct {
	TargetURL string
	File      FileRef
	// Field is the multipart field name the file is posted under.
	// Empty means DefaultFieldName.
	Field string
}

// DefaultFieldName is the multipart field the file is posted under unless
// the caller overrides it.
const DefaultFieldName = "file"

// FieldName returns the configured multipart field name or the default.
func (p PendingRequest) FieldName() string {
	if p.Field == "" {
		return DefaultFieldName
	}
	return p.Field
}

// BodyKind says how a response body was interpreted.
type BodyKind int

const (
	KindText BodyKind = iota
	KindStructured
	KindBinary
)

func (k BodyKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindBinary:
		return "binary"
	default:
		return "text"
	}
}

// WebhookResult captures everything observed from one resolved submission.
// A new result fully replaces the previous one; exactly one of Binary,
// Structured, or Text is populated according to Kind.
type WebhookResult struct {
	RequestURL        string
	StatusCode        int
	Headers           map[string]string
	Kind              BodyKind
	Binary            []byte
	Structured        any
	Text              string
	SuggestedFileName string
	ContentType       string
	Size              int64
}

// IsBinary reports whether the body must be treated as a downloadable file.
func (r *WebhookResult) IsBinary() bool {
	return r != nil && r.Kind == KindBinary
}

// Release drops the body buffers so a replaced result does not pin its
// (potentially large) binary payload while the new one is displayed.
func (r *WebhookResult) Release() {
	if r == nil {
		return
	}
	r.Binary = nil
	r.Structured = nil
	r.Text = ""
}
