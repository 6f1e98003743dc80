package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

// absTolerance is the slack for numeric answers whose tolerance is zero or
// whose expected value is zero.
const absTolerance = 1e-9

// grade reports whether answer matches q.Answer. A single option letter
// ("b", "B)") on a multiple-choice question is read as that option.
// Numeric answers may carry q.Unit as a suffix and match within the
// question's relative tolerance; everything else compares
// case-insensitively.
func grade(q *models.Question, answer string) bool {
	given := strings.TrimSpace(answer)
	if given == "" {
		return false
	}

	if opt, ok := optionFor(q.Options, given); ok {
		given = opt
	}

	if expected, err := parseNumber(q.Answer, ""); err == nil {
		got, err := parseNumber(given, q.Unit)
		if err != nil {
			return false
		}
		return withinTolerance(got, expected, q.Tolerance)
	}

	return strings.EqualFold(normalizeText(given), normalizeText(q.Answer))
}

func optionFor(options []string, given string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	letter := strings.TrimRight(given, ").")
	if len(letter) != 1 {
		return "", false
	}
	c := letter[0] | 0x20
	if c < 'a' || c > 'z' {
		return "", false
	}
	i := int(c - 'a')
	if i >= len(options) {
		return "", false
	}
	return options[i], true
}

func parseNumber(s, unit string) (float64, error) {
	s = strings.TrimSpace(s)
	if unit != "" && len(s) > len(unit) && strings.EqualFold(s[len(s)-len(unit):], unit) {
		s = strings.TrimSpace(s[:len(s)-len(unit)])
	}
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

func withinTolerance(got, expected, tolerance float64) bool {
	if math.IsNaN(got) || math.IsInf(got, 0) {
		return false
	}
	slack := math.Abs(expected) * tolerance
	if slack < absTolerance {
		slack = absTolerance
	}
	return math.Abs(got-expected) <= slack
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
