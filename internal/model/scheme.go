package model

// Scheme is the closed set of descriptor grammars understood by the parser.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeShadowsocks
	SchemeVMess
	SchemeTrojan
	SchemeVLESS
	SchemeSocks
	SchemeHysteria2
	SchemeTUIC
	SchemeSnell
)

// UnnamedNode is the display name used when a descriptor carries no name or
// the name cannot be decoded.
const UnnamedNode = "未命名节点"

// SnellMarker identifies Snell lines. Snell lines are comma delimited, so the
// marker is matched anywhere in the line rather than as a prefix.
const SnellMarker = "snell,"

func (s Scheme) String() string {
	switch s {
	case SchemeShadowsocks:
		return "ss"
	case SchemeVMess:
		return "vmess"
	case SchemeTrojan:
		return "trojan"
	case SchemeVLESS:
		return "vless"
	case SchemeSocks:
		return "socks5"
	case SchemeHysteria2:
		return "hysteria2"
	case SchemeTUIC:
		return "tuic"
	case SchemeSnell:
		return "snell"
	default:
		return "unknown"
	}
}

// Prefixes lists the URI prefixes of every URI-shaped scheme, in match order.
// Several prefixes may map to the same scheme.
var Prefixes = []struct {
	Prefix string
	Scheme Scheme
}{
	{"ss://", SchemeShadowsocks},
	{"vmess://", SchemeVMess},
	{"trojan://", SchemeTrojan},
	{"vless://", SchemeVLESS},
	{"socks://", SchemeSocks},
	{"hysteria2://", SchemeHysteria2},
	{"hy2://", SchemeHysteria2},
	{"tuic://", SchemeTUIC},
}
