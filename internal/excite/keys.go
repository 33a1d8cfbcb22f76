package excite

import (
	"strings"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
)

// emptyTitleToken stands in for the term key when a listing has no title,
// so titleless listings still share one coarse content bucket.
const emptyTitleToken = "x"

// DeriveKeys maps a listing to the feature keys its weights and cooldowns
// live under: one per source, one per leading title term. Each axis is
// namespaced so keys from different axes cannot collide. Deterministic:
// the same listing always yields the same keys.
func DeriveKeys(item domain.Item) []string {
	term := emptyTitleToken
	if fields := strings.Fields(strings.ToLower(item.Title)); len(fields) > 0 {
		term = fields[0]
	}
	return []string{
		"src:" + item.Source,
		"term:" + term,
	}
}
