// ABOUTME: Truncate cuts sanitized text to a column budget on grapheme boundaries.
// ABOUTME: Appends an ellipsis when text is cut so clipped labels are recognizable.

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Truncate returns s cut to at most maxWidth columns. When s does not fit,
// the last column is an ellipsis. A wide cluster that would straddle the
// limit is dropped rather than split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var next string
		cluster, next, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := ClusterWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		rest = next
	}
	b.WriteString(ellipsis)
	return b.String()
}
