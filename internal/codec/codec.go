// Package codec holds the total text transforms used by every descriptor
// parser. None of the functions here return errors: on failure they fall
// back to the input, so parsers only ever deal with semantically missing
// fields.
package codec

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Strategy is one fallible decode attempt.
type Strategy func(string) (string, bool)

// First returns the result of the first strategy that succeeds, or in when
// all of them fail.
func First(in string, strategies ...Strategy) string {
	for _, s := range strategies {
		if out, ok := s(in); ok {
			return out
		}
	}
	return in
}

// DecodeBase64 decodes a base64 payload in any of the common alphabets.
// Valid UTF-8 is returned as is; other bytes are read as ISO-8859-1 so that
// no byte is lost. When the input is not base64 at all it is returned
// unchanged.
func DecodeBase64(s string) string {
	return First(s, decodeBase64UTF8, decodeBase64Latin1)
}

// EncodeBase64 encodes s as standard base64 of its UTF-8 bytes. Strings that
// are not valid UTF-8 cannot be represented and are returned unchanged.
func EncodeBase64(s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// ReencodeText repairs text that was decoded with the wrong charset one layer
// up: Latin-1 mojibake of UTF-8 bytes first, then a stray percent-encoding.
func ReencodeText(s string) string {
	if s == "" {
		return s
	}
	return First(s, latin1AsUTF8, unescapeComponent)
}

// DecodeURIComponent percent-decodes s. '+' is kept literally. Malformed
// escapes, or escapes that do not form UTF-8, leave s unchanged.
func DecodeURIComponent(s string) string {
	return First(s, unescapeComponent)
}

// DecodeQueryComponent is DecodeURIComponent with form semantics: '+' means
// a space.
func DecodeQueryComponent(s string) string {
	return First(s, func(in string) (string, bool) {
		out, err := url.QueryUnescape(in)
		if err != nil || !utf8.ValidString(out) {
			return "", false
		}
		return out, true
	})
}

// TryBase64 decodes s as base64 and reports whether it was base64 carrying
// valid UTF-8.
func TryBase64(s string) (string, bool) {
	return decodeBase64UTF8(s)
}

func unescapeComponent(s string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, true
	}
	out, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(out) {
		return "", false
	}
	return out, true
}

func latin1AsUTF8(s string) (string, bool) {
	b, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(b) {
		return "", false
	}
	return b, true
}

func decodeBase64UTF8(s string) (string, bool) {
	b, ok := decodeBase64Bytes(s)
	if !ok || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

func decodeBase64Latin1(s string) (string, bool) {
	b, ok := decodeBase64Bytes(s)
	if !ok {
		return "", false
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

func decodeBase64Bytes(s string) ([]byte, bool) {
	s = removeSpaceTabCRLF(s)
	if s == "" {
		return nil, false
	}
	for _, enc := range encodings {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}

func removeSpaceTabCRLF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
