package classify

import (
	"testing"

	"github.com/probelabs/hookprobe/internal/domain"
)

func TestResponseDeclaredTypes(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		want        domain.BodyKind
	}{
		{"pdf is binary", "application/pdf", domain.KindBinary},
		{"octet-stream is binary", "application/octet-stream", domain.KindBinary},
		{"zip with parameters is binary", "application/zip; foo=bar", domain.KindBinary},
		{"json is structured", "application/json", domain.KindStructured},
		{"json with charset is structured", "application/json; charset=utf-8", domain.KindStructured},
		{"vendor json is structured", "application/vnd.api+json", domain.KindStructured},
		{"text json alias is structured", "text/json", domain.KindStructured},
		{"plain text is text", "text/plain", domain.KindText},
		{"html is text", "text/html; charset=utf-8", domain.KindText},
		{"xml under application renders inline", "application/xml+text", domain.KindText},
		{"image is text per declared rules", "image/png", domain.KindText},
		{"case is ignored", "Application/PDF", domain.KindBinary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Response(tc.contentType, "", nil)
			if got.Kind != tc.want {
				t.Fatalf("Response(%q) kind = %s, want %s", tc.contentType, got.Kind, tc.want)
			}
		})
	}
}

func TestResponseBinaryNeverDecodesBody(t *testing.T) {
	got := Response("application/pdf", "", nil)
	if got.Kind != domain.KindBinary {
		t.Fatalf("expected binary, got %s", got.Kind)
	}
	if got.FileName != DefaultFileName {
		t.Fatalf("expected default file name, got %q", got.FileName)
	}
}

func TestResponseFileNameFromDisposition(t *testing.T) {
	got := Response("application/pdf", `attachment; filename="report.pdf"`, nil)
	if got.FileName != "report.pdf" {
		t.Fatalf("suggested name = %q, want report.pdf", got.FileName)
	}

	got = Response("application/octet-stream", `attachment; filename=data.bin`, nil)
	if got.FileName != "data.bin" {
		t.Fatalf("unquoted name = %q, want data.bin", got.FileName)
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		disposition string
		want        string
		ok          bool
	}{
		{`attachment; filename="x.pdf"`, "x.pdf", true},
		{`attachment; filename=x.pdf`, "x.pdf", true},
		{`attachment; FILENAME="X.PDF"`, "X.PDF", true},
		{`attachment; filename = "spaced.bin"`, "spaced.bin", true},
		{`inline`, "", false},
		{``, "", false},
		{`attachment; filename=""`, "", false},
	}

	for _, tc := range cases {
		got, ok := FileName(tc.disposition)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("FileName(%q) = %q, %v; want %q, %v", tc.disposition, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResponseSniffsWhenUndeclared(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	got := Response("", "", pngMagic)
	if !got.Sniffed {
		t.Fatalf("expected sniffed classification")
	}
	if got.Kind != domain.KindBinary {
		t.Fatalf("sniffed png kind = %s, want binary", got.Kind)
	}

	got = Response("", "", []byte("hello, webhook"))
	if got.Kind != domain.KindText {
		t.Fatalf("sniffed text kind = %s, want text", got.Kind)
	}
}
