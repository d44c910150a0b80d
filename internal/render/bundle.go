package render

import (
	"github.com/John-Robertt/subhub-go/internal/model"
	"github.com/John-Robertt/subhub-go/internal/sub"
)

// filterBundle works on descriptor text, below the parsed-node level:
// bundle clients consume the original syntax. Lines are normalized and
// split like the other targets; Snell lines and lines of no known scheme
// are dropped and counted.
func filterBundle(lines []string) (kept []string, dropped int) {
	expanded := sub.Expand(lines)
	kept = make([]string, 0, len(expanded))
	for _, line := range expanded {
		switch sub.Detect(line) {
		case model.SchemeSnell, model.SchemeUnknown:
			dropped++
		default:
			kept = append(kept, line)
		}
	}
	return kept, dropped
}
