package sub

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/model"
)

// vmessPayload is the JSON document inside a vmess:// link. Producers
// disagree on whether numbers are quoted, so every field is a flexString.
type vmessPayload struct {
	PS   flexString `json:"ps"`
	Add  flexString `json:"add"`
	Port flexString `json:"port"`
	ID   flexString `json:"id"`
	Aid  flexString `json:"aid"`
	Net  flexString `json:"net"`
	Host flexString `json:"host"`
	Path flexString `json:"path"`
	TLS  flexString `json:"tls"`
	SNI  flexString `json:"sni"`
	ALPN flexString `json:"alpn"`
}

// flexString accepts a JSON string, number or bool and keeps its text.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		// Structured values are not used by any field.
		*f = ""
	default:
		*f = flexString(raw)
	}
	return nil
}

func decodeVMessPayload(body string) (vmessPayload, error) {
	body, _, _ = strings.Cut(body, "#")
	decoded := codec.DecodeBase64(strings.TrimSpace(body))
	var p vmessPayload
	if err := json.Unmarshal(jsonc.ToJSON([]byte(decoded)), &p); err != nil {
		return vmessPayload{}, err
	}
	return p, nil
}

func parseVMess(line string, prefixLen int) (model.Node, error) {
	p, err := decodeVMessPayload(line[prefixLen:])
	if err != nil {
		return nil, newParseError(line, CodeParse, "vmess JSON 解析失败", "expected: vmess://base64(json)", err)
	}
	if p.Add == "" || p.Port == "" || p.ID == "" {
		return nil, newParseError(line, CodeParse, "vmess 缺少 add/port/id", "", errors.New("missing required field"))
	}
	port, ok := leadingPort(string(p.Port))
	if !ok {
		return nil, newParseError(line, CodeParse, "vmess 端口不合法", "", nil)
	}
	aid, _ := strconv.Atoi(strings.TrimSpace(string(p.Aid)))

	return &model.VMess{
		Base:    model.Base{Name: ExtractName(line), Server: string(p.Add), Port: port},
		UUID:    string(p.ID),
		AlterID: aid,
		TLS:     string(p.TLS) == "tls",
		Network: string(p.Net),
		Host:    string(p.Host),
		Path:    string(p.Path),
		SNI:     string(p.SNI),
		ALPN:    splitList(string(p.ALPN)),
	}, nil
}
