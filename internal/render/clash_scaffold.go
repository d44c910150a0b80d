package render

import "github.com/John-Robertt/subhub-go/internal/yamldoc"

// The Clash document carries a fixed routing scaffold: selection groups,
// rules and remote rule providers. Only the proxy list and the members of
// each group depend on the input.

const iconBase = "https://cdn.jsdelivr.net/gh/Koolson/Qure@master/IconSet/Color/"

var clashGroupDefs = []struct {
	Name string
	Icon string
}{
	{"节点选择", "Proxy.png"},
	{"媒体服务", "Netflix.png"},
	{"微软服务", "Microsoft.png"},
	{"苹果服务", "Apple.png"},
	{"CDN服务", "OneDrive.png"},
	{"AI服务", "ChatGPT.png"},
	{"Telegram", "Telegram.png"},
	{"Speedtest", "Speedtest.png"},
}

// reservedClashNames are policy names a proxy must not shadow.
func reservedClashNames() []string {
	out := []string{"DIRECT", "REJECT", "REJECT-DROP"}
	for _, g := range clashGroupDefs {
		out = append(out, g.Name)
	}
	return out
}

func clashGroups(proxyNames []string) yamldoc.Seq {
	groups := make(yamldoc.Seq, 0, len(clashGroupDefs))
	for _, g := range clashGroupDefs {
		members := make([]string, 0, len(proxyNames)+1)
		members = append(members, "DIRECT")
		members = append(members, proxyNames...)
		groups = append(groups, yamldoc.NewMap().
			Set("name", g.Name).
			Set("type", "select").
			Set("proxies", members).
			Set("icon", iconBase+g.Icon))
	}
	return groups
}

var clashRuleList = []string{
	"RULE-SET,reject_non_ip,REJECT",
	"RULE-SET,reject_domainset,REJECT",
	"RULE-SET,reject_extra_domainset,REJECT",
	"RULE-SET,reject_non_ip_drop,REJECT-DROP",
	"RULE-SET,reject_non_ip_no_drop,REJECT",
	"RULE-SET,speedtest,Speedtest",
	"RULE-SET,telegram_non_ip,Telegram",
	"RULE-SET,apple_cdn,DIRECT",
	"RULE-SET,apple_cn_non_ip,DIRECT",
	"RULE-SET,microsoft_cdn_non_ip,DIRECT",
	"RULE-SET,apple_services,苹果服务",
	"RULE-SET,microsoft_non_ip,微软服务",
	"RULE-SET,download_domainset,CDN服务",
	"RULE-SET,download_non_ip,CDN服务",
	"RULE-SET,cdn_domainset,CDN服务",
	"RULE-SET,cdn_non_ip,CDN服务",
	"RULE-SET,stream_non_ip,媒体服务",
	"RULE-SET,ai_non_ip,AI服务",
	"RULE-SET,global_non_ip,节点选择",
	"RULE-SET,domestic_non_ip,DIRECT",
	"RULE-SET,direct_non_ip,DIRECT",
	"RULE-SET,lan_non_ip,DIRECT",
	"GEOSITE,CN,DIRECT",
	"RULE-SET,reject_ip,REJECT",
	"RULE-SET,telegram_ip,Telegram",
	"RULE-SET,stream_ip,媒体服务",
	"RULE-SET,lan_ip,DIRECT",
	"RULE-SET,domestic_ip,DIRECT",
	"RULE-SET,china_ip,DIRECT",
	"GEOIP,LAN,DIRECT",
	"GEOIP,CN,DIRECT",
	"MATCH,节点选择",
}

func clashRules() []string {
	return append([]string(nil), clashRuleList...)
}

type ruleProvider struct {
	Name     string
	Behavior string
	Proxy    string
	URL      string
	Path     string
}

const (
	providerInterval = 43200
	rulesetBase      = "https://ruleset.skk.moe/Clash/"
)

var clashProviderList = []ruleProvider{
	{"reject_non_ip_no_drop", "classical", "节点选择", rulesetBase + "non_ip/reject-no-drop.txt", "./rule_set/sukkaw_ruleset/reject_non_ip_no_drop.txt"},
	{"reject_non_ip_drop", "classical", "节点选择", rulesetBase + "non_ip/reject-drop.txt", "./rule_set/sukkaw_ruleset/reject_non_ip_drop.txt"},
	{"reject_non_ip", "classical", "节点选择", rulesetBase + "non_ip/reject.txt", "./rule_set/sukkaw_ruleset/reject_non_ip.txt"},
	{"reject_domainset", "domain", "节点选择", rulesetBase + "domainset/reject.txt", "./rule_set/sukkaw_ruleset/reject_domainset.txt"},
	{"reject_extra_domainset", "domain", "节点选择", rulesetBase + "domainset/reject_extra.txt", "./sukkaw_ruleset/reject_domainset_extra.txt"},
	{"reject_ip", "classical", "节点选择", rulesetBase + "ip/reject.txt", "./rule_set/sukkaw_ruleset/reject_ip.txt"},
	{"speedtest", "domain", "Speedtest", rulesetBase + "domainset/speedtest.txt", "./rule_set/sukkaw_ruleset/speedtest.txt"},
	{"cdn_domainset", "domain", "节点选择", rulesetBase + "domainset/cdn.txt", "./rule_set/sukkaw_ruleset/cdn_domainset.txt"},
	{"cdn_non_ip", "domain", "节点选择", rulesetBase + "non_ip/cdn.txt", "./rule_set/sukkaw_ruleset/cdn_non_ip.txt"},
	{"stream_non_ip", "classical", "节点选择", rulesetBase + "non_ip/stream.txt", "./rule_set/sukkaw_ruleset/stream_non_ip.txt"},
	{"stream_ip", "classical", "节点选择", rulesetBase + "ip/stream.txt", "./rule_set/sukkaw_ruleset/stream_ip.txt"},
	{"ai_non_ip", "classical", "节点选择", rulesetBase + "non_ip/ai.txt", "./rule_set/sukkaw_ruleset/ai_non_ip.txt"},
	{"telegram_non_ip", "classical", "节点选择", rulesetBase + "non_ip/telegram.txt", "./rule_set/sukkaw_ruleset/telegram_non_ip.txt"},
	{"telegram_ip", "classical", "节点选择", rulesetBase + "ip/telegram.txt", "./rule_set/sukkaw_ruleset/telegram_ip.txt"},
	{"apple_cdn", "domain", "节点选择", rulesetBase + "domainset/apple_cdn.txt", "./rule_set/sukkaw_ruleset/apple_cdn.txt"},
	{"apple_services", "classical", "节点选择", rulesetBase + "non_ip/apple_services.txt", "./rule_set/sukkaw_ruleset/apple_services.txt"},
	{"apple_cn_non_ip", "classical", "节点选择", rulesetBase + "non_ip/apple_cn.txt", "./rule_set/sukkaw_ruleset/apple_cn_non_ip.txt"},
	{"microsoft_cdn_non_ip", "classical", "节点选择", rulesetBase + "non_ip/microsoft_cdn.txt", "./rule_set/sukkaw_ruleset/microsoft_cdn_non_ip.txt"},
	{"microsoft_non_ip", "classical", "节点选择", rulesetBase + "non_ip/microsoft.txt", "./rule_set/sukkaw_ruleset/microsoft_non_ip.txt"},
	{"download_domainset", "domain", "节点选择", rulesetBase + "domainset/download.txt", "./rule_set/sukkaw_ruleset/download_domainset.txt"},
	{"download_non_ip", "domain", "节点选择", rulesetBase + "non_ip/download.txt", "./rule_set/sukkaw_ruleset/download_non_ip.txt"},
	{"lan_non_ip", "classical", "节点选择", rulesetBase + "non_ip/lan.txt", "./rule_set/sukkaw_ruleset/lan_non_ip.txt"},
	{"lan_ip", "classical", "节点选择", rulesetBase + "ip/lan.txt", "./rule_set/sukkaw_ruleset/lan_ip.txt"},
	{"domestic_non_ip", "classical", "节点选择", rulesetBase + "non_ip/domestic.txt", "./rule_set/sukkaw_ruleset/domestic_non_ip.txt"},
	{"direct_non_ip", "classical", "节点选择", rulesetBase + "non_ip/direct.txt", "./rule_set/sukkaw_ruleset/direct_non_ip.txt"},
	{"global_non_ip", "classical", "节点选择", rulesetBase + "non_ip/global.txt", "./rule_set/sukkaw_ruleset/global_non_ip.txt"},
	{"domestic_ip", "classical", "节点选择", rulesetBase + "ip/domestic.txt", "./rule_set/sukkaw_ruleset/domestic_ip.txt"},
	{"china_ip", "ipcidr", "节点选择", rulesetBase + "ip/china_ip.txt", "./rule_set/sukkaw_ruleset/china_ip.txt"},
}

func clashRuleProviders() *yamldoc.Map {
	m := yamldoc.NewMap()
	for _, p := range clashProviderList {
		m.Set(p.Name, yamldoc.NewMap().
			Set("type", "http").
			Set("behavior", p.Behavior).
			Set("interval", providerInterval).
			Set("format", "text").
			Set("proxy", p.Proxy).
			Set("url", p.URL).
			Set("path", p.Path))
	}
	return m
}
