package render

import "github.com/John-Robertt/subhub-go/internal/model"

// Supports reports whether target can express nodes of scheme.
//
// Surge has no VLESS proxy type. Clash-family clients have no Snell
// support, and neither do the v2ray-style clients the bundles are for.
func Supports(target Target, scheme model.Scheme) bool {
	if scheme == model.SchemeUnknown {
		return false
	}
	switch target {
	case TargetSurge:
		return scheme != model.SchemeVLESS
	case TargetClash, TargetV2ray, TargetRaw:
		return scheme != model.SchemeSnell
	default:
		return false
	}
}
