package zap

import (
	"strings"
)

// controlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). A schedule line can carry arbitrary bytes in its
// command token, and those end up in log fields.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeString escapes control characters in a single string value.
func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}
