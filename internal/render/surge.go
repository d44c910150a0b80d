package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

func renderSurge(nodes []model.Node) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if line := surgeLine(n); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// surgeLine renders "name = type, server, port, k=v, ...". VLESS has no
// Surge form and yields "".
func surgeLine(n model.Node) string {
	switch p := n.(type) {
	case *model.Shadowsocks:
		parts := surgeHead(p.Base, "ss",
			"encrypt-method="+p.Method,
			"password="+p.Password)
		if mode, host, ok := obfsPlugin(p); ok {
			parts = append(parts, "obfs="+mode)
			if host != "" {
				parts = append(parts, "obfs-host="+host)
			}
		}
		return strings.Join(parts, ", ")

	case *model.VMess:
		parts := surgeHead(p.Base, "vmess",
			"username="+p.UUID,
			"vmess-aead=true",
			"tls="+strconv.FormatBool(p.TLS),
			"sni="+p.Server,
			"skip-cert-verify=true",
			"tfo=false")
		if p.TLS && len(p.ALPN) > 0 {
			parts = append(parts, "alpn="+strings.Join(p.ALPN, ":"))
		}
		if p.Network == "ws" {
			parts = append(parts, "ws=true")
			if p.Path != "" {
				parts = append(parts, "ws-path="+p.Path)
			}
			parts = append(parts, "ws-headers=Host:"+firstNonEmpty(p.Host, p.Server))
		}
		return strings.Join(parts, ", ")

	case *model.Trojan:
		parts := surgeHead(p.Base, "trojan",
			"password="+p.Password,
			"tls=true",
			"sni="+p.Server,
			"skip-cert-verify=true",
			"tfo=false")
		if len(p.ALPN) > 0 {
			parts = append(parts, "alpn="+strings.Join(p.ALPN, ":"))
		}
		if p.Network == "ws" {
			parts = append(parts, "ws=true")
			if p.WSPath != "" {
				parts = append(parts, "ws-path="+p.WSPath)
			}
			parts = append(parts, "ws-headers=Host:"+firstNonEmpty(p.WSHost, p.Server))
		}
		return strings.Join(parts, ", ")

	case *model.Socks:
		parts := surgeHead(p.Base, "socks5")
		if p.Username != "" {
			parts = append(parts, p.Username)
		}
		if p.Password != "" {
			parts = append(parts, p.Password)
		}
		return strings.Join(parts, ", ")

	case *model.Hysteria2:
		parts := surgeHead(p.Base, "hysteria2", "password="+p.Password)
		parts = appendKV(parts, "up", p.Up)
		parts = appendKV(parts, "down", p.Down)
		parts = appendKV(parts, "sni", p.SNI)
		parts = appendKV(parts, "alpn", strings.Join(p.ALPN, ","))
		if p.Obfs != "" {
			parts = append(parts, "obfs="+p.Obfs)
			parts = appendKV(parts, "obfs-password", p.ObfsPassword)
		}
		parts = appendKV(parts, "cc", p.Congestion)
		parts = append(parts, "skip-cert-verify=true")
		return strings.Join(parts, ", ")

	case *model.TUIC:
		version := "5"
		if p.Version != nil {
			version = strconv.Itoa(*p.Version)
		}
		parts := surgeHead(p.Base, "tuic",
			"uuid="+p.UUID,
			"password="+p.Password,
			"version="+version,
			"sni="+firstNonEmpty(p.SNI, p.Server))
		parts = appendKV(parts, "alpn", strings.Join(p.ALPN, ","))
		parts = append(parts, "skip-cert-verify="+strconv.FormatBool(p.AllowInsecure))
		parts = appendKV(parts, "udp-relay-mode", p.UDPRelayMode)
		parts = appendKV(parts, "congestion-control", p.Congestion)
		if p.DisableSNI {
			parts = append(parts, "disable-sni=true")
		}
		if p.ReduceRTT {
			parts = append(parts, "reduce-rtt=true")
		}
		return strings.Join(parts, ", ")

	case *model.Snell:
		fields := strings.Split(p.Raw, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return strings.Join(fields, ", ")
	}
	return ""
}

func surgeHead(b model.Base, typ string, rest ...string) []string {
	parts := make([]string, 0, 3+len(rest))
	parts = append(parts, fmt.Sprintf("%s = %s", b.Name, typ), b.Server, strconv.Itoa(b.Port))
	return append(parts, rest...)
}

func appendKV(parts []string, key, value string) []string {
	if value == "" {
		return parts
	}
	return append(parts, key+"="+value)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// obfsPlugin extracts simple-obfs settings from a Shadowsocks node. Other
// plugins have no equivalent in either dialect and are left out.
func obfsPlugin(p *model.Shadowsocks) (mode, host string, ok bool) {
	if p.PluginName != "simple-obfs" && p.PluginName != "obfs-local" {
		return "", "", false
	}
	for _, kv := range p.PluginOpts {
		switch strings.TrimSpace(kv.Key) {
		case "obfs":
			mode = strings.TrimSpace(kv.Value)
		case "obfs-host":
			host = strings.TrimSpace(kv.Value)
		}
	}
	return mode, host, mode != ""
}
