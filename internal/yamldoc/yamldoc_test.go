package yamldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshal_Scalars(t *testing.T) {
	m := NewMap().
		Set("mode", "rule").
		Set("mixed-port", 7890).
		Set("allow-lan", true).
		Set("ratio", 0.5).
		Set("none", nil).
		Set("flag", "true").
		Set("num", "5").
		Set("empty", "").
		Set("padded", " x ").
		Set("name", "香港 01")

	want := "mode: rule\n" +
		"mixed-port: 7890\n" +
		"allow-lan: true\n" +
		"ratio: 0.5\n" +
		"none: null\n" +
		"flag: \"true\"\n" +
		"num: \"5\"\n" +
		"empty: \"\"\n" +
		"padded: \" x \"\n" +
		"name: 香港 01\n"
	assert.Equal(t, want, Marshal(m))
}

func TestMarshal_BooleanLikeStringQuotedNumberNot(t *testing.T) {
	assert.Equal(t, "a: \"true\"\n", Marshal(NewMap().Set("a", "true")))
	assert.Equal(t, "a: 5\n", Marshal(NewMap().Set("a", 5)))
}

func TestMarshal_QuotingRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword case", "Yes", `"Yes"`},
		{"tilde", "~", `"~"`},
		{"signed int", "-12", `"-12"`},
		{"float", ".5", `".5"`},
		{"newline", "a\nb", `"a\nb"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash with quote", `a\"b`, `"a\\\"b"`},
		{"colon space", "a: b", `"a: b"`},
		{"comment", "a #b", `"a #b"`},
		{"leading hash", "#x", `"#x"`},
		{"leading dash", "- x", `"- x"`},
		{"flow indicator", "[HK] node", `"[HK] node"`},
		{"alias indicator", "*x", `"*x"`},
		{"plain path", "/ws", "/ws"},
		{"plain url", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"plain cipher", "aes-128-gcm", "aes-128-gcm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "v: "+tt.want+"\n", Marshal(NewMap().Set("v", tt.in)))
		})
	}
}

func TestMarshal_KeyQuoting(t *testing.T) {
	out := Marshal(NewMap().
		Set("1st", "a").
		Set("has space", "b").
		Set("on", "c").
		Set("Host", "d").
		Set("a@b", "e"))
	want := "\"1st\": a\n" +
		"\"has space\": b\n" +
		"\"on\": c\n" +
		"Host: d\n" +
		"\"a@b\": e\n"
	assert.Equal(t, want, out)
}

func TestMarshal_Sequences(t *testing.T) {
	m := NewMap().
		Set("proxies", Seq{
			NewMap().Set("name", "a").Set("port", 1).Set("ws-opts", NewMap().Set("path", "/ws")),
		}).
		Set("members", []string{"DIRECT", "x:y", "7", "plain"}).
		Set("none", Seq{}).
		Set("opts", NewMap()).
		Set("nested", Seq{Seq{"x"}})

	want := "proxies:\n" +
		"  -\n" +
		"    name: a\n" +
		"    port: 1\n" +
		"    ws-opts:\n" +
		"      path: /ws\n" +
		"members:\n" +
		"  - DIRECT\n" +
		"  - \"x:y\"\n" +
		"  - \"7\"\n" +
		"  - plain\n" +
		"none: []\n" +
		"opts: {}\n" +
		"nested:\n" +
		"  -\n" +
		"    - x\n"
	assert.Equal(t, want, Marshal(m))
}

func TestMarshal_EmptyDocument(t *testing.T) {
	assert.Equal(t, "{}\n", Marshal(nil))
	assert.Equal(t, "{}\n", Marshal(NewMap()))
}

func TestMap_SetKeepsPosition(t *testing.T) {
	m := NewMap().Set("a", 1).Set("b", 2).Set("a", 3)
	require.Equal(t, 2, m.Len())
	assert.Equal(t, Entry{Key: "a", Value: 3}, m.Entries()[0])
	assert.Equal(t, "a: 3\nb: 2\n", Marshal(m))
}

func TestMarshal_ParsesBack(t *testing.T) {
	tricky := []string{
		"", " lead", "trail ", "true", "NULL", "0x1F", "1e3", "12:30", "a: b", "a #b",
		"#x", "- x", "[x]", "{x}", "&a", "*a", "!tag", "|", ">", "%x", "@x", "`x", "'q'",
		`"q"`, `back\slash`, "tab\there", "new\nline", "香港 🇭🇰", "?x", ",x",
	}
	items := make(Seq, 0, len(tricky))
	m := NewMap()
	for i, s := range tricky {
		items = append(items, s)
		m.Set("k"+string(rune('a'+i)), s)
	}
	m.Set("items", items)
	m.Set("maps", Seq{NewMap().Set("name", "[HK] 01").Set("alpn", []string{"h2", "http/1.1"})})

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(Marshal(m)), &got), Marshal(m))

	for i, s := range tricky {
		assert.Equal(t, s, got["k"+string(rune('a'+i))], "value %q", s)
	}
	gotItems, ok := got["items"].([]any)
	require.True(t, ok)
	require.Len(t, gotItems, len(tricky))
	for i, s := range tricky {
		assert.Equal(t, s, gotItems[i], "item %q", s)
	}
	maps := got["maps"].([]any)
	first := maps[0].(map[string]any)
	assert.Equal(t, "[HK] 01", first["name"])
	assert.Equal(t, []any{"h2", "http/1.1"}, first["alpn"])
}
