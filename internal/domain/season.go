package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seasonKeyExpr  = regexp.MustCompile(`^\d{4}/\d{4}$`)
	seasonYearExpr = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeSeason turns "2025" into "2025/2026" and keeps "2025/2026".
// Any other non-empty value is returned trimmed; empty input yields "".
func NormalizeSeason(input string) string {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return ""
	case seasonKeyExpr.MatchString(input):
		return input
	case seasonYearExpr.MatchString(input):
		year, _ := strconv.Atoi(input)
		return input + "/" + strconv.Itoa(year+1)
	default:
		return input
	}
}

// SeasonStartYear returns the first year of a season key or a bare year.
func SeasonStartYear(season string) (int, bool) {
	season = strings.TrimSpace(season)
	if len(season) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(season[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// CurrentSeason returns the season key running at now; seasons start in July.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return NormalizeSeason(strconv.Itoa(year))
}
