package render

import (
	"strings"
	"time"

	"github.com/John-Robertt/subhub-go/internal/compiler"
	"github.com/John-Robertt/subhub-go/internal/model"
	"github.com/John-Robertt/subhub-go/internal/yamldoc"
)

const clashHeader = "# Clash 配置文件 - Sub-Hub 自动生成\n# 生成时间: "

func renderClash(nodes []model.Node, now time.Time) string {
	names := compiler.UniqueNames(nodes, reservedClashNames()...)

	proxies := make(yamldoc.Seq, 0, len(nodes))
	emitted := make([]string, 0, len(nodes))
	for i, n := range nodes {
		rec := clashProxy(n, names[i])
		if rec == nil {
			continue
		}
		proxies = append(proxies, rec)
		emitted = append(emitted, names[i])
	}

	doc := yamldoc.NewMap().
		Set("global-ua", "clash").
		Set("mode", "rule").
		Set("mixed-port", 7890).
		Set("allow-lan", true).
		Set("external-controller", "0.0.0.0:9090").
		Set("proxies", proxies).
		Set("proxy-groups", clashGroups(emitted)).
		Set("rules", clashRules()).
		Set("rule-providers", clashRuleProviders())

	var b strings.Builder
	b.WriteString(clashHeader)
	b.WriteString(now.UTC().Format("2006-01-02T15:04:05.000Z"))
	b.WriteString("\n\n")
	b.WriteString(yamldoc.Marshal(doc))
	return b.String()
}

// clashProxy builds one proxies entry. Key order follows what Clash
// clients print for the same proxy; optional keys are omitted when empty.
func clashProxy(n model.Node, name string) *yamldoc.Map {
	b := n.Common()
	m := yamldoc.NewMap().Set("name", name)

	switch p := n.(type) {
	case *model.Shadowsocks:
		m.Set("type", "ss").Set("server", b.Server).Set("port", b.Port).
			Set("cipher", p.Method).
			Set("password", p.Password)
		if mode, host, ok := obfsPlugin(p); ok {
			opts := yamldoc.NewMap().Set("mode", mode)
			if host != "" {
				opts.Set("host", host)
			}
			m.Set("plugin", "obfs").Set("plugin-opts", opts)
		}

	case *model.VMess:
		m.Set("type", "vmess").Set("server", b.Server).Set("port", b.Port).
			Set("uuid", p.UUID).
			Set("alterId", p.AlterID).
			Set("cipher", "auto").
			Set("tls", p.TLS)
		switch p.Network {
		case "ws":
			m.Set("network", "ws")
			if p.Path != "" {
				m.Set("ws-opts", yamldoc.NewMap().
					Set("path", p.Path).
					Set("headers", yamldoc.NewMap().Set("Host", firstNonEmpty(p.Host, p.Server))))
			}
		case "grpc":
			m.Set("network", "grpc")
			if p.Path != "" {
				m.Set("grpc-opts", yamldoc.NewMap().Set("grpc-service-name", p.Path))
			}
		}
		if p.TLS {
			m.Set("skip-cert-verify", true)
			setIf(m, "servername", p.SNI)
		}

	case *model.Trojan:
		m.Set("type", "trojan").Set("server", b.Server).Set("port", b.Port).
			Set("password", p.Password).
			Set("skip-cert-verify", true)
		setTransport(m, p.Network, p.WSPath, p.WSHost, p.GRPCServiceName)
		setIf(m, "sni", p.SNI)

	case *model.VLESS:
		m.Set("type", "vless").Set("server", b.Server).Set("port", b.Port).
			Set("uuid", p.UUID).
			Set("tls", p.TLS()).
			Set("client-fingerprint", "chrome").
			Set("tfo", false).
			Set("skip-cert-verify", false)
		setIf(m, "flow", p.Flow)
		if p.Security == "reality" && (p.PublicKey != "" || p.ShortID != "") {
			opts := yamldoc.NewMap()
			setIf(opts, "public-key", p.PublicKey)
			setIf(opts, "short-id", p.ShortID)
			m.Set("reality-opts", opts)
		}
		if !setTransport(m, p.Network, p.WSPath, p.WSHost, p.GRPCServiceName) {
			m.Set("network", "tcp")
		}
		setIf(m, "servername", p.SNI)

	case *model.Socks:
		m.Set("type", "socks5").Set("server", b.Server).Set("port", b.Port)
		setIf(m, "username", p.Username)
		setIf(m, "password", p.Password)

	case *model.Hysteria2:
		m.Set("type", "hysteria2").Set("server", b.Server).Set("port", b.Port).
			Set("password", p.Password).
			Set("skip-cert-verify", true)
		setIf(m, "up", p.Up)
		setIf(m, "down", p.Down)
		setIf(m, "sni", p.SNI)
		if len(p.ALPN) > 0 {
			m.Set("alpn", p.ALPN)
		}
		if p.Obfs != "" {
			m.Set("obfs", p.Obfs)
			setIf(m, "obfs-password", p.ObfsPassword)
		}
		setIf(m, "cc", p.Congestion)

	case *model.TUIC:
		m.Set("type", "tuic").Set("server", b.Server).Set("port", b.Port).
			Set("uuid", p.UUID).
			Set("password", p.Password).
			Set("skip-cert-verify", true)
		if p.Version != nil {
			m.Set("version", *p.Version)
		}
		setIf(m, "sni", p.SNI)
		if len(p.ALPN) > 0 {
			m.Set("alpn", p.ALPN)
		}
		setIf(m, "udp-relay-mode", p.UDPRelayMode)
		setIf(m, "congestion-control", p.Congestion)
		if p.DisableSNI {
			m.Set("disable-sni", true)
		}
		if p.ReduceRTT {
			m.Set("reduce-rtt", true)
		}

	default:
		return nil
	}
	return m
}

// setTransport writes network and its options for ws and grpc. It reports
// whether network was set.
func setTransport(m *yamldoc.Map, network, wsPath, wsHost, grpcService string) bool {
	switch network {
	case "ws":
		m.Set("network", "ws")
		if wsPath != "" || wsHost != "" {
			opts := yamldoc.NewMap()
			setIf(opts, "path", wsPath)
			if wsHost != "" {
				opts.Set("headers", yamldoc.NewMap().Set("Host", wsHost))
			}
			m.Set("ws-opts", opts)
		}
		return true
	case "grpc":
		m.Set("network", "grpc")
		// Some producers put the service name in path.
		if svc := firstNonEmpty(grpcService, wsPath); svc != "" {
			m.Set("grpc-opts", yamldoc.NewMap().Set("grpc-service-name", svc))
		}
		return true
	}
	return false
}

func setIf(m *yamldoc.Map, key, value string) {
	if value != "" {
		m.Set(key, value)
	}
}
