package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

// parseSnell reads "name = snell, host, port, key=value, ...". The raw line
// is kept because Snell is only ever re-emitted as a Surge line.
func parseSnell(line string) (model.Node, error) {
	_, rest, ok := strings.Cut(line, "=")
	if !ok {
		return nil, newParseError(line, CodeParse, "snell 行缺少 '='", "expected: name = snell, host, port, ...", nil)
	}
	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 || !strings.EqualFold(parts[0], "snell") {
		return nil, newParseError(line, CodeParse, "snell 行格式不合法", "expected: name = snell, host, port, ...", nil)
	}
	if parts[1] == "" {
		return nil, newParseError(line, CodeParse, "snell 缺少服务器地址", "", nil)
	}
	port, ok := leadingPort(parts[2])
	if !ok {
		return nil, newParseError(line, CodeParse, "snell 端口不合法", "", nil)
	}

	var kvs []model.KV
	for _, p := range parts[3:] {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		kvs = append(kvs, model.KV{Key: k, Value: strings.TrimSpace(v)})
	}
	return &model.Snell{
		Base:   model.Base{Name: ExtractName(line), Server: parts[1], Port: port},
		Params: kvs,
		Raw:    line,
	}, nil
}
