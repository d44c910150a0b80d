package sub

import (
	"strconv"
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

func parseHysteria2(line string) (model.Node, error) {
	u, err := parseURI(line)
	if err != nil {
		return nil, newParseError(line, CodeParse, "hysteria2 uri 格式不合法", "", err)
	}
	password := u.username
	if password == "" {
		password = u.query.get("password")
	}
	return &model.Hysteria2{
		Base:         model.Base{Name: ExtractName(line), Server: u.host, Port: u.port},
		Password:     password,
		Up:           u.query.get("upmbps", "up"),
		Down:         u.query.get("downmbps", "down"),
		SNI:          u.query.decoded("sni"),
		ALPN:         splitList(u.query.decoded("alpn")),
		Obfs:         u.query.decoded("obfs"),
		ObfsPassword: u.query.decoded("obfs-password"),
		Congestion:   u.query.get("cc"),
	}, nil
}

func parseTUIC(line string) (model.Node, error) {
	u, err := parseURI(line)
	if err != nil {
		return nil, newParseError(line, CodeParse, "tuic uri 格式不合法", "", err)
	}
	n := &model.TUIC{
		Base:          model.Base{Name: ExtractName(line), Server: u.host, Port: u.port},
		UUID:          u.username,
		Password:      u.password,
		SNI:           u.query.decoded("sni"),
		ALPN:          splitList(u.query.decoded("alpn")),
		UDPRelayMode:  u.query.get("udp_relay_mode", "udp-relay-mode"),
		Congestion:    u.query.get("congestion_control", "congestion-control", "cc"),
		DisableSNI:    u.query.flag("disable_sni"),
		ReduceRTT:     u.query.flag("reduce_rtt"),
		AllowInsecure: u.query.flag("allow_insecure", "allowInsecure"),
	}
	if n.UUID == "" {
		n.UUID = u.query.get("uuid")
	}
	if n.Password == "" {
		n.Password = u.query.get("password")
	}
	if v, err := strconv.Atoi(strings.TrimSpace(u.query.get("version", "v"))); err == nil {
		n.Version = &v
	}
	return n, nil
}
