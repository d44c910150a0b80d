package sub

import (
	"testing"

	"github.com/John-Robertt/subhub-go/internal/model"
)

func FuzzParse(f *testing.F) {
	seed := []string{
		"",
		"   \n",
		"ss://YWVzLTEyOC1nY206cGFzcw==@example.com:8388#Node%201",
		"ss://YWVzLTEyOC1nY206cGFzcw==@example.com:8388/?plugin=simple-obfs%3Bobfs%3Dtls%3Bobfs-host%3Dexample.com#obfs",
		"ss://YWVzLTEyOC1nY206cGFzcw==@[::1]:8388#ipv6",
		"vmess://eyJhZGQiOiJhIiwicG9ydCI6MSwiaWQiOiJ4In0=",
		"trojan://p@h:443?type=ws&path=%2Fws#t",
		"trojan://p^s s%@h:443#lenient",
		"vless://u@h:443?security=reality&pbk=k&sid=s#v",
		"socks://dXNlcjpwYXNz@h:1080",
		"hy2://p@h:443?obfs=salamander",
		"tuic://u:p@h:443?version=5&alpn=h3",
		"HK = snell, 1.2.3.4, 443, psk=x",
	}
	for _, s := range seed {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, line string) {
		name := ExtractName(line)
		if name == "" {
			t.Fatalf("ExtractName returned empty name")
		}

		n, err := Parse(line)
		if err != nil {
			if n != nil {
				t.Fatalf("non-nil node with error: %v", err)
			}
			return
		}
		b := n.Common()
		if b.Name == "" {
			t.Fatalf("empty name")
		}
		if b.Server == "" {
			t.Fatalf("empty server")
		}
		if b.Port < 0 {
			t.Fatalf("negative port: %d", b.Port)
		}
		if n.Scheme() == model.SchemeUnknown {
			t.Fatalf("parsed node has unknown scheme")
		}
	})
}
