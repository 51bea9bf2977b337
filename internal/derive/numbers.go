// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearPattern    = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	datePattern    = regexp.MustCompile(`(?:\b(\d{1,2})(?:st|nd|rd|th)?\s+)?\b([a-z]+)\.?,?\s*((?:19|20)\d{2})\b`)
	integerPattern = regexp.MustCompile(`\d[\d,]*`)
	decimalPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// YearRange returns the first and last four-digit year (1900-2099) in text.
// A single year yields start == end; no year yields two empty strings.
func YearRange(text string) (start, end string) {
	years := yearPattern.FindAllString(text, -1)
	if len(years) == 0 {
		return "", ""
	}
	return years[0], years[len(years)-1]
}

type dateToken struct {
	day   int
	month int
	year  string
}

// dateTokens finds "[day] month year" tokens whose month word resolves in
// the vocabulary. A missing or out-of-range day is reported as 0.
func (v Vocabulary) dateTokens(text string) []dateToken {
	var out []dateToken
	for _, m := range datePattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		month, ok := v.Months[m[2]]
		if !ok {
			continue
		}
		day := 0
		if m[1] != "" {
			if d, err := strconv.Atoi(m[1]); err == nil && d >= 1 && d <= 31 {
				day = d
			}
		}
		out = append(out, dateToken{day: day, month: int(month), year: m[3]})
	}
	return out
}

// DateRange returns ISO start and end dates for a study-period description.
// The first date token gives the start (day defaults to 01) and the last
// gives the end (day defaults to 28). With fewer than two tokens the end
// falls back to 31 December of the last year mentioned; with none the start
// falls back to 1 January of the first year. No year at all yields "".
func (v Vocabulary) DateRange(text string) (start, end string) {
	tokens := v.dateTokens(text)
	firstYear, lastYear := YearRange(text)

	switch {
	case len(tokens) >= 1:
		t := tokens[0]
		start = formatDate(t.year, t.month, orDefault(t.day, 1))
	case firstYear != "":
		start = firstYear + "-01-01"
	}

	switch {
	case len(tokens) >= 2:
		t := tokens[len(tokens)-1]
		end = formatDate(t.year, t.month, orDefault(t.day, 28))
	case lastYear != "":
		end = lastYear + "-12-31"
	}
	return start, end
}

func formatDate(year string, month, day int) string {
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// ParseInt returns the first integer in text with thousands separators
// removed, normalized (no leading zeros). It returns "" when text holds no
// digits.
func ParseInt(text string) string {
	m := integerPattern.FindString(text)
	if m == "" {
		return ""
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// ParsePercent returns the first integer or decimal number in text as
// written. It returns "" when text holds no digits.
func ParsePercent(text string) string {
	return decimalPattern.FindString(text)
}
