package corpus

import (
	"regexp"
	"strconv"
)

var (
	sessionNoRe   = regexp.MustCompile(`[Ss]ession\s+(\d+)`)
	sessionDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
)

// ParseSessionFilename extracts the session number and date from a session log
// filename, e.g. "Session 14.md" or "2024-12-30 - Session 14.md". Either part
// may be absent; an unparseable filename yields (nil, "") rather than an error.
func ParseSessionFilename(filename string) (sessionNo *int, sessionDate string) {
	if m := sessionNoRe.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			sessionNo = &n
		}
	}
	if m := sessionDateRe.FindStringSubmatch(filename); m != nil {
		sessionDate = m[1]
	}
	return sessionNo, sessionDate
}
