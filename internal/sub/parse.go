// Package sub turns proxy descriptor lines into typed nodes.
//
// One line holds one descriptor. URI-shaped schemes are recognized by
// prefix; Snell lines use a "name = snell, host, port, k=v" form instead.
// Parsing is lenient about optional parameters and strict about the fields a
// node cannot exist without (server, port and the scheme's credential).
package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

// Parse normalizes and parses a single descriptor line. Failures are
// *ParseError.
func Parse(line string) (model.Node, error) {
	line = Normalize(line)
	if line == "" {
		return nil, newParseError(line, CodeParse, "节点行为空", "", nil)
	}
	if strings.ContainsAny(line, "\r\n") {
		return nil, newParseError(line, CodeParse, "一行中包含多个节点", "", nil)
	}

	scheme := Detect(line)
	if scheme == model.SchemeSnell {
		return parseSnell(line)
	}
	_, n, ok := matchPrefix(line)
	if !ok {
		return nil, newParseError(line, CodeUnsupported, "不支持的节点协议", "expected one of: ss vmess trojan vless socks hysteria2 hy2 tuic snell", nil)
	}

	switch scheme {
	case model.SchemeShadowsocks:
		return parseShadowsocks(line, n)
	case model.SchemeVMess:
		return parseVMess(line, n)
	case model.SchemeTrojan:
		return parseTrojan(line)
	case model.SchemeVLESS:
		return parseVLESS(line)
	case model.SchemeSocks:
		return parseSocks(line)
	case model.SchemeHysteria2:
		return parseHysteria2(line)
	case model.SchemeTUIC:
		return parseTUIC(line)
	default:
		return nil, newParseError(line, CodeUnsupported, "不支持的节点协议", "", nil)
	}
}
