// Package classify decides how a webhook response body should be
// interpreted, based purely on header values (plus a content sniff when the
// server declared nothing). It performs no I/O and never decodes the body.
package classify

import (
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/probelabs/hookprobe/internal/domain"
)

// DefaultFileName is suggested for binary bodies when the response carries
// no usable content-disposition.
const DefaultFileName = "download"

// Classification is the verdict for one response body.
type Classification struct {
	Kind        domain.BodyKind
	ContentType string
	// FileName is set only for binary bodies.
	FileName string
	// Sniffed marks a content type detected from the body bytes because the
	// response declared none.
	Sniffed bool
}

var filenameRe = regexp.MustCompile(`(?i)filename\s*=\s*(?:"([^"]*)"|([^;]+))`)

// Response classifies a body from its declared content-type and
// content-disposition headers. When contentType is empty the body bytes are
// sniffed instead.
//
// Rules: an application/* type that mentions neither "json" nor "text" is a
// binary file; anything mentioning "json" is structured; everything else is
// plain text. JSON and text-ish subtypes under application/ therefore still
// render inline rather than triggering a download.
func Response(contentType, disposition string, body []byte) Classification {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	sniffed := false
	if ct == "" {
		ct = strings.ToLower(mimetype.Detect(body).String())
		sniffed = true
	}

	cls := Classification{ContentType: ct, Sniffed: sniffed}
	switch {
	case isBinary(ct, sniffed):
		cls.Kind = domain.KindBinary
		name, ok := FileName(disposition)
		if !ok {
			name = DefaultFileName
		}
		cls.FileName = name
	case strings.Contains(ct, "json"):
		cls.Kind = domain.KindStructured
	default:
		cls.Kind = domain.KindText
	}
	return cls
}

// FileName extracts the suggested file name from a content-disposition
// value, accepting both filename="..." and bare filename=... forms.
func FileName(disposition string) (string, bool) {
	m := filenameRe.FindStringSubmatch(disposition)
	if m == nil {
		return "", false
	}
	name := m[1]
	if name == "" {
		name = strings.TrimSpace(m[2])
	}
	if name == "" {
		return "", false
	}
	return name, true
}

func isBinary(ct string, sniffed bool) bool {
	if strings.Contains(ct, "json") || strings.Contains(ct, "text") {
		return false
	}
	if sniffed {
		// mimetype only reports a text/* type for bodies it could decode as
		// text, so any other sniffed type is a file
		return true
	}
	return strings.HasPrefix(ct, "application/")
}
