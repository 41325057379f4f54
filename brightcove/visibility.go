package brightcove

import "time"

// Visible decides whether a record with the given schedule is publicly
// visible at the evaluation instant now.
//
// Absence of a schedule means always visible. A scheduled record is visible
// only strictly after StartsAt, and no later than EndsAt (the end bound is
// inclusive). A bound that is empty or does not parse as RFC 3339 is treated
// as absent on its own, without affecting the other bound.
func Visible(s *Schedule, now time.Time) bool {
	if s == nil {
		return true
	}
	if starts, ok := parseBound(s.StartsAt); ok && !now.After(starts) {
		return false
	}
	if ends, ok := parseBound(s.EndsAt); ok && now.After(ends) {
		return false
	}
	return true
}

// releaseTime is the effective release instant of a video: the schedule's
// start bound when it parses, else the publication timestamp.
func releaseTime(v *Video) (time.Time, bool) {
	if v.Schedule != nil {
		if t, ok := parseBound(v.Schedule.StartsAt); ok {
			return t, true
		}
	}
	return parseBound(v.PublishedAt)
}

// parseBound parses an RFC 3339 schedule bound. ok is false for empty or
// malformed values.
func parseBound(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
