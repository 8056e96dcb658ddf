// Package render writes the result panel: status badge, header dump, and the
// classified body view.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/probelabs/hookprobe/internal/domain"
)

// Renderer writes webhook results to a single output stream.
type Renderer struct {
	out io.Writer
}

// New builds a renderer targeting out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Result renders the full result panel for res.
func (r *Renderer) Result(res *domain.WebhookResult) error {
	if res == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status: %d %s\n", res.StatusCode, http.StatusText(res.StatusCode))
	fmt.Fprintf(&b, "Content-Type: %s\n", res.ContentType)

	if len(res.Headers) > 0 {
		b.WriteString("\nHeaders:\n")
		keys := make([]string, 0, len(res.Headers))
		for k := range res.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, res.Headers[k])
		}
	}

	fmt.Fprintf(&b, "\nBody (%s, %s):\n", res.Kind, FormatBytes(res.Size))
	body, err := bodyView(res)
	if err != nil {
		return err
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}

	_, err = io.WriteString(r.out, b.String())
	return err
}

func bodyView(res *domain.WebhookResult) (string, error) {
	switch res.Kind {
	case domain.KindBinary:
		return fmt.Sprintf("binary payload, save as %q to inspect", res.SuggestedFileName), nil
	case domain.KindStructured:
		pretty, err := json.MarshalIndent(res.Structured, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render structured body: %w", err)
		}
		return string(pretty), nil
	default:
		if strings.Contains(res.ContentType, "html") {
			if title := HTMLTitle([]byte(res.Text)); title != "" {
				return fmt.Sprintf("(page title: %s)\n%s", title, res.Text), nil
			}
		}
		// verbatim, whitespace preserved
		return res.Text, nil
	}
}
