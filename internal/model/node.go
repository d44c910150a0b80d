package model

type KV struct {
	Key   string
	Value string
}

// Base holds the fields every node has. A node is only constructed when
// Server and Port are present.
type Base struct {
	// Name is never empty: parsers fall back to UnnamedNode. It is not
	// guaranteed to be unique across a subscription.
	Name   string
	Server string
	Port   int
}

// Node is the parsed, scheme-tagged form of one descriptor line.
//
// Optional string fields use "" for "absent". Optional integers that may
// legitimately be zero are pointers.
type Node interface {
	Scheme() Scheme
	Common() *Base
}

type Shadowsocks struct {
	Base
	Method   string
	Password string

	// PluginName/PluginOpts come from the SIP002 "plugin" query parameter.
	// PluginOpts preserves order to keep output deterministic.
	PluginName string
	PluginOpts []KV
}

type VMess struct {
	Base
	UUID    string
	AlterID int
	TLS     bool
	Network string // "ws", "grpc", "tcp", ... as sent by the descriptor
	Host    string // ws Host header
	Path    string // ws path or grpc service name
	SNI     string
	ALPN    []string
}

type Trojan struct {
	Base
	Password        string
	Network         string
	WSPath          string
	WSHost          string
	GRPCServiceName string
	SNI             string
	ALPN            []string
}

type VLESS struct {
	Base
	UUID            string
	Security        string // "", "tls", "reality", "none"
	Flow            string
	Network         string
	WSPath          string
	WSHost          string
	GRPCServiceName string
	SNI             string

	// Reality fields are only populated when Security is "reality".
	PublicKey string
	ShortID   string
}

// TLS reports whether the node negotiates TLS (plain or reality).
func (n *VLESS) TLS() bool { return n.Security == "tls" || n.Security == "reality" }

type Socks struct {
	Base
	Username string
	Password string
}

type Hysteria2 struct {
	Base
	Password     string
	Up           string
	Down         string
	SNI          string
	ALPN         []string
	Obfs         string
	ObfsPassword string
	Congestion   string
}

type TUIC struct {
	Base
	UUID          string
	Password      string
	Version       *int
	SNI           string
	ALPN          []string
	UDPRelayMode  string
	Congestion    string
	DisableSNI    bool
	ReduceRTT     bool
	AllowInsecure bool
}

// Snell keeps its original line: it is only re-emitted verbatim (modulo
// whitespace) and never reinterpreted.
type Snell struct {
	Base
	Params []KV
	Raw    string
}

func (n *Shadowsocks) Scheme() Scheme { return SchemeShadowsocks }
func (n *VMess) Scheme() Scheme       { return SchemeVMess }
func (n *Trojan) Scheme() Scheme      { return SchemeTrojan }
func (n *VLESS) Scheme() Scheme       { return SchemeVLESS }
func (n *Socks) Scheme() Scheme       { return SchemeSocks }
func (n *Hysteria2) Scheme() Scheme   { return SchemeHysteria2 }
func (n *TUIC) Scheme() Scheme        { return SchemeTUIC }
func (n *Snell) Scheme() Scheme       { return SchemeSnell }

func (n *Shadowsocks) Common() *Base { return &n.Base }
func (n *VMess) Common() *Base       { return &n.Base }
func (n *Trojan) Common() *Base      { return &n.Base }
func (n *VLESS) Common() *Base       { return &n.Base }
func (n *Socks) Common() *Base       { return &n.Base }
func (n *Hysteria2) Common() *Base   { return &n.Base }
func (n *TUIC) Common() *Base        { return &n.Base }
func (n *Snell) Common() *Base       { return &n.Base }
