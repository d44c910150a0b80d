package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

func parseTrojan(line string) (model.Node, error) {
	u, err := parseURI(line)
	if err != nil {
		return nil, newParseError(line, CodeParse, "trojan uri 格式不合法", "", err)
	}
	if u.username == "" {
		return nil, newParseError(line, CodeParse, "trojan 缺少密码", "expected: trojan://password@host:port", nil)
	}
	return &model.Trojan{
		Base:            model.Base{Name: ExtractName(line), Server: u.host, Port: u.port},
		Password:        u.username,
		Network:         u.query.get("type"),
		WSPath:          u.query.decoded("path"),
		WSHost:          u.query.decoded("host"),
		GRPCServiceName: u.query.decoded("serviceName"),
		SNI:             u.query.decoded("sni"),
		ALPN:            splitList(u.query.decoded("alpn")),
	}, nil
}

func parseVLESS(line string) (model.Node, error) {
	u, err := parseURI(line)
	if err != nil {
		return nil, newParseError(line, CodeParse, "vless uri 格式不合法", "", err)
	}
	if u.username == "" {
		return nil, newParseError(line, CodeParse, "vless 缺少 uuid", "expected: vless://uuid@host:port", nil)
	}
	n := &model.VLESS{
		Base:            model.Base{Name: ExtractName(line), Server: u.host, Port: u.port},
		UUID:            u.username,
		Security:        strings.ToLower(u.query.get("security")),
		Flow:            u.query.get("flow"),
		Network:         u.query.get("type"),
		WSPath:          u.query.decoded("path"),
		WSHost:          u.query.decoded("host"),
		GRPCServiceName: u.query.decoded("serviceName"),
		SNI:             u.query.decoded("sni"),
	}
	if n.Security == "reality" {
		n.PublicKey = u.query.get("pbk")
		n.ShortID = u.query.get("sid")
	}
	return n, nil
}
