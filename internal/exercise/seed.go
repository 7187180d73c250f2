package exercise

import (
	"strconv"
	"time"
	"unicode/utf16"
)

// DeriveSeed turns a (question, session) identifier pair into a non-negative
// shuffle seed. The same pair always yields the same seed.
//
// An empty sessionID falls back to the current wall-clock time in
// milliseconds, which makes the result differ between calls. Callers that
// need a stable word bank across re-renders must pass an explicit session id.
func DeriveSeed(questionID, sessionID string) int64 {
	if sessionID == "" {
		sessionID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return hashString(questionID + sessionID)
}

// hashString is the classic h*31 + c rolling hash over UTF-16 code units,
// wrapped to a signed 32-bit integer, returned as its absolute value.
func hashString(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
