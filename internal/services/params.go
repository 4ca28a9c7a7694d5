package services

import (
	"math"
	"strings"

	"nutrition-admin/internal/domain"
)

// parseLeadingInt reads an optionally signed integer prefix, ignoring leading
// whitespace and anything after the digits ("30days" is 30, "7.9" is 7).
// ok is false when there are no digits. Overlong values saturate.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	if s == "" {
		return 0, false
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var n int64
	digits := 0
	for _, ch := range []byte(s) {
		if ch < '0' || ch > '9' {
			break
		}
		digits++
		if n < math.MaxInt32 {
			n = n*10 + int64(ch-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseRecentQuery turns the raw days/limit query values into a clamped window.
// Missing or non-numeric values take the defaults.
func ParseRecentQuery(days, limit string) domain.RecentQuery {
	d, ok := parseLeadingInt(days)
	if !ok {
		d = domain.DefaultRecentDays
	}
	l, ok := parseLeadingInt(limit)
	if !ok {
		l = domain.DefaultRecentLimit
	}
	return domain.RecentQuery{
		Days:  clamp(d, domain.MinRecentDays, domain.MaxRecentDays),
		Limit: clamp(l, domain.MinRecentLimit, domain.MaxRecentLimit),
	}
}

// ParseUserFilter normalizes the /api/users query values. Unknown status values
// and non-numeric funnel stages are dropped rather than rejected.
func ParseUserFilter(search, status, goal, funnelStage, sort, order string) domain.UserFilter {
	f := domain.UserFilter{
		Search: strings.TrimSpace(search),
		Goal:   strings.TrimSpace(goal),
		Sort:   sort,
		Order:  domain.SortDesc,
	}

	switch domain.UserStatus(status) {
	case domain.UserStatusBuyer, domain.UserStatusLead:
		f.Status = domain.UserStatus(status)
	}

	if stage, ok := parseLeadingInt(funnelStage); ok {
		f.FunnelStage = &stage
	}

	if domain.SortOrder(order) == domain.SortAsc {
		f.Order = domain.SortAsc
	}

	return f
}
