package notify

import (
	"fmt"
	"strings"

	"github.com/greetly/greetly/engine/core"
)

// maxBulletLines caps the rendered match list so a pathological roster
// cannot produce a message the gateway refuses. Overflow is summarized in
// a trailing count line.
const maxBulletLines = 50

// FormatMessage renders the matched set into the single consolidated
// message body. Empty input yields an empty string; the caller must
// suppress delivery rather than send an empty message.
func FormatMessage(matches []core.Record, target core.Date) string {
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Birthday reminders for %s %d:", target.Month, target.Day)
	shown := matches
	if len(shown) > maxBulletLines {
		shown = shown[:maxBulletLines]
	}
	for _, m := range shown {
		fmt.Fprintf(&b, "\n• %s", m.Name)
	}
	if extra := len(matches) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "\n… and %d more", extra)
	}
	return b.String()
}
