package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/model"
)

// ExtractName returns the display name carried by a descriptor line. It
// never fails: anything that does not yield a name gives model.UnnamedNode.
func ExtractName(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.UnnamedNode
	}

	if strings.Contains(line, model.SnellMarker) {
		name, _, _ := strings.Cut(line, "=")
		return orUnnamed(name)
	}

	if scheme, n, ok := matchPrefix(line); ok && scheme == model.SchemeVMess {
		p, err := decodeVMessPayload(line[n:])
		if err != nil {
			return model.UnnamedNode
		}
		return orUnnamed(codec.ReencodeText(string(p.PS)))
	}

	if _, frag, ok := strings.Cut(line, "#"); ok {
		return orUnnamed(codec.DecodeURIComponent(frag))
	}
	return model.UnnamedNode
}

func orUnnamed(name string) string {
	name = strings.TrimSpace(stripControl(name))
	if name == "" {
		return model.UnnamedNode
	}
	return name
}

// stripControl removes the characters that would break a line-oriented
// output dialect.
func stripControl(s string) string {
	if !strings.ContainsAny(s, "\r\n\x00") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', 0:
			return -1
		}
		return r
	}, s)
}
