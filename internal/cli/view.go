package cli

import (
	"fmt"
	"strings"

	"mmtype/internal/engine"
)

const clearLine = "\r\033[K"

// RenderLine draws a snapshot on one terminal line: the sentence with the
// cursor as '|', then the typed letters and the numbered candidate page.
func RenderLine(snap engine.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(snap.Sentence[0])
	if snap.Sentence[1] != "" {
		sb.WriteString("[" + snap.Sentence[1] + "]")
	}
	sb.WriteByte('|')
	sb.WriteString(snap.Sentence[2])

	if snap.Typed == "" {
		return sb.String()
	}
	sb.WriteString("  " + snap.Typed + " ")
	for i, c := range snap.Candidates {
		label := fmt.Sprint((i + 1) % 10)
		if c.Flags.Has(engine.FlagShortcutHint) {
			label = "~"
		}
		if c.Flags.Has(engine.FlagSelected) {
			fmt.Fprintf(&sb, " <%s.%s>", label, c.Text)
		} else {
			fmt.Fprintf(&sb, " %s.%s", label, c.Text)
		}
	}
	if snap.Pages > 1 {
		fmt.Fprintf(&sb, " (%d/%d)", snap.Page+1, snap.Pages)
	}
	return sb.String()
}
