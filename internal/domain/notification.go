package domain

import (
	"strings"
	"time"
)

// TimeFormat is the timestamp layout used everywhere a notification time is
// rendered or defaulted: local time, second precision.
const TimeFormat = "2006-01-02 15:04:05"

// Notification is one titled, timestamped event reported by the robot.
// Records are immutable once appended to the log.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// NotifyRequest is the inbound POST /notify payload. Every field is
// optional; Normalize fills the gaps.
type NotifyRequest struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
	Time    *string `json:"time"`
}

// Normalize trims all fields and applies defaults: title falls back to
// "Unknown", time to now in TimeFormat. The clock is injected so tests can
// pin it.
func (r NotifyRequest) Normalize(now func() time.Time) Notification {
	n := Notification{
		Title:   trimmed(r.Title),
		Message: trimmed(r.Message),
		Time:    trimmed(r.Time),
	}
	if n.Title == "" {
		n.Title = "Unknown"
	}
	if n.Time == "" {
		n.Time = now().Format(TimeFormat)
	}
	return n
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
