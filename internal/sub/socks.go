package sub

import (
	"strings"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/model"
)

func parseSocks(line string) (model.Node, error) {
	u, err := parseURI(line)
	if err != nil {
		return nil, newParseError(line, CodeParse, "socks uri 格式不合法", "", err)
	}
	user, pass := socksCredentials(u)
	return &model.Socks{
		Base:     model.Base{Name: ExtractName(line), Server: u.host, Port: u.port},
		Username: user,
		Password: pass,
	}, nil
}

// socksCredentials tries, in order: base64("user:pass") in the username,
// a plain username with a URL password, a username alone.
func socksCredentials(u uri) (string, string) {
	if u.username == "" {
		return "", ""
	}
	if d := codec.DecodeBase64(u.username); strings.Contains(d, ":") {
		user, pass, _ := strings.Cut(d, ":")
		return user, pass
	}
	if u.password != "" {
		return u.username, u.password
	}
	return u.username, ""
}
