package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/model"
)

// Detect classifies a descriptor line. Snell lines are recognized by the
// "snell," marker anywhere in the line, URI schemes by a case-insensitive
// prefix.
func Detect(line string) model.Scheme {
	if strings.Contains(line, model.SnellMarker) {
		return model.SchemeSnell
	}
	if scheme, _, ok := matchPrefix(line); ok {
		return scheme
	}
	return model.SchemeUnknown
}

// Normalize trims a line and unwraps it when the whole line is a base64
// blob of URI descriptors. The decoded text may hold several lines; callers
// that feed a parser split it first.
func Normalize(line string) string {
	line = strings.TrimSpace(stripUTF8BOM(line))
	if line == "" || Detect(line) != model.SchemeUnknown {
		return line
	}
	decoded := strings.TrimSpace(stripUTF8BOM(codec.DecodeBase64(line)))
	if _, _, ok := matchPrefix(decoded); ok {
		return decoded
	}
	return line
}

// Expand normalizes every line and splits unwrapped blobs, dropping blank
// lines. Order is preserved.
func Expand(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		n := Normalize(line)
		if !strings.ContainsAny(n, "\r\n") {
			if n != "" {
				out = append(out, n)
			}
			continue
		}
		for _, part := range strings.Split(n, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// matchPrefix returns the scheme of line's URI prefix and the prefix length.
func matchPrefix(line string) (model.Scheme, int, bool) {
	for _, p := range model.Prefixes {
		if len(line) >= len(p.Prefix) && strings.EqualFold(line[:len(p.Prefix)], p.Prefix) {
			return p.Scheme, len(p.Prefix), true
		}
	}
	return model.SchemeUnknown, 0, false
}

func stripUTF8BOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
