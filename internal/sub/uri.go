package sub

import (
	"errors"
	"strconv"
	"strings"

	"github.com/John-Robertt/subhub-go/internal/codec"
)

// uri is the part of a URI descriptor every parser needs. The fragment is
// stripped before parsing; the name is taken by ExtractName instead.
type uri struct {
	host     string
	port     int
	username string
	password string
	query    params
}

// parseURI splits the authority by hand. Userinfo is whatever precedes the
// last '@' and may hold characters net/url rejects (space, '^', '|', a bare
// '%'); each half is percent-decoded on its own.
func parseURI(line string) (uri, error) {
	withoutFrag, _, _ := strings.Cut(line, "#")
	withoutQuery, rawQuery, _ := strings.Cut(withoutFrag, "?")

	_, rest, ok := strings.Cut(withoutQuery, "://")
	if !ok {
		return uri{}, errors.New("missing scheme separator")
	}
	authority, _, _ := strings.Cut(rest, "/")

	out := uri{query: parseQuery(rawQuery)}
	hostPort := authority
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		user, pass, _ := strings.Cut(authority[:at], ":")
		out.username = codec.DecodeURIComponent(user)
		out.password = codec.DecodeURIComponent(pass)
		hostPort = authority[at+1:]
	}

	host, portStr, ok := splitHostPort(hostPort)
	if !ok {
		return uri{}, errors.New("missing host or port")
	}
	port, ok := leadingPort(portStr)
	if !ok {
		return uri{}, errors.New("missing port")
	}
	out.host = host
	out.port = port
	return out, nil
}

// params is a flat query map. When a key repeats, the last value wins.
type params map[string]string

// parseQuery splits on '&' only: several descriptor formats put raw ';'
// inside values, which net/url.ParseQuery rejects.
func parseQuery(raw string) params {
	out := params{}
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = codec.DecodeQueryComponent(k)
		if k == "" {
			continue
		}
		out[k] = codec.DecodeQueryComponent(v)
	}
	return out
}

// get returns the value of the first listed key that is present and
// non-empty.
func (p params) get(keys ...string) string {
	for _, k := range keys {
		if v := p[k]; v != "" {
			return v
		}
	}
	return ""
}

// decoded is get followed by one more percent-decoding pass. Subscription
// producers commonly double-encode paths and hostnames.
func (p params) decoded(keys ...string) string {
	return codec.DecodeURIComponent(p.get(keys...))
}

func (p params) flag(keys ...string) bool {
	switch strings.ToLower(p.get(keys...)) {
	case "1", "true":
		return true
	}
	return false
}

// splitList splits a comma separated value, trimming items and dropping
// empty ones.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// leadingPort parses the leading decimal digits of s. Trailing garbage is
// ignored; no digits at all is a failure.
func leadingPort(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// splitHostPort splits "host:port" or "[v6]:port" without validating the
// port. Unbracketed input splits at the last colon.
func splitHostPort(s string) (host, port string, ok bool) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", false
		}
		host = s[1:end]
		rest, found := strings.CutPrefix(s[end+1:], ":")
		if !found {
			return "", "", false
		}
		port = rest
	} else {
		i := strings.LastIndexByte(s, ':')
		if i < 0 {
			return "", "", false
		}
		host, port = s[:i], s[i+1:]
	}
	host = strings.TrimSpace(host)
	if host == "" || port == "" {
		return "", "", false
	}
	return host, port, true
}
