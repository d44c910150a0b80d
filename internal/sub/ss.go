package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/model"
)

// parseShadowsocks accepts both SIP002 (ss://userinfo@host:port) and the
// legacy form where everything up to the fragment is base64.
func parseShadowsocks(line string, prefixLen int) (model.Node, error) {
	withoutFrag, _, _ := strings.Cut(line, "#")
	rest, query, _ := strings.Cut(withoutFrag[prefixLen:], "?")
	if rest == "" {
		return nil, newParseError(line, CodeParse, "ss:// 后缺少内容", "", nil)
	}

	var cred, hostPort string
	if at := strings.LastIndexByte(rest, '@'); at >= 0 {
		cred = codec.First(rest[:at], base64Credentials, percentCredentials)
		hostPort = rest[at+1:]
	} else {
		decoded, ok := codec.TryBase64(rest)
		if !ok {
			return nil, newParseError(line, CodeParse, "ss base64 解码失败", "", nil)
		}
		at := strings.LastIndexByte(decoded, '@')
		if at < 0 {
			return nil, newParseError(line, CodeParse, "ss base64 解码结果缺少 @ 分隔符", "", nil)
		}
		cred, hostPort = decoded[:at], decoded[at+1:]
	}
	if i := strings.IndexByte(hostPort, '/'); i >= 0 {
		hostPort = hostPort[:i]
	}

	method, password, ok := strings.Cut(cred, ":")
	method = strings.TrimSpace(method)
	password = strings.TrimSpace(password)
	if !ok || method == "" || password == "" {
		return nil, newParseError(line, CodeParse, "cipher 或 password 不能为空", "expected: method:password", nil)
	}

	server, portStr, ok := splitHostPort(hostPort)
	if !ok {
		return nil, newParseError(line, CodeParse, "服务器地址或端口不合法", "", nil)
	}
	port, ok := leadingPort(portStr)
	if !ok {
		return nil, newParseError(line, CodeParse, "服务器端口不合法", "", nil)
	}

	node := &model.Shadowsocks{
		Base:     model.Base{Name: ExtractName(line), Server: server, Port: port},
		Method:   method,
		Password: password,
	}
	node.PluginName, node.PluginOpts = parsePlugin(parseQuery(query).get("plugin"))
	return node, nil
}

func base64Credentials(s string) (string, bool) {
	d, ok := codec.TryBase64(s)
	return d, ok && strings.Contains(d, ":")
}

func percentCredentials(s string) (string, bool) {
	d := codec.DecodeURIComponent(s)
	return d, strings.Contains(d, ":")
}

// parsePlugin splits a SIP002 plugin value ("name;k=v;k2=v2"). Malformed
// options are skipped.
func parsePlugin(v string) (string, []model.KV) {
	segs := strings.Split(v, ";")
	name := strings.TrimSpace(segs[0])
	if name == "" {
		return "", nil
	}
	var opts []model.KV
	for _, seg := range segs[1:] {
		k, val, ok := strings.Cut(seg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		opts = append(opts, model.KV{Key: k, Value: val})
	}
	return name, opts
}
