// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/amr-curator/pkg/types"
)

var countrySeparator = regexp.MustCompile(`,|;|/|\band\b`)

// Countries splits a free-text country cell on commas, semicolons, slashes
// and the word "and", trims each part and maps known aliases to their
// canonical name. Parts without an alias keep their original casing.
func (v Vocabulary) Countries(text string) types.TagList {
	var out types.TagList
	for _, part := range countrySeparator.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if canon, ok := v.CountryAliases[strings.ToLower(part)]; ok {
			part = canon
		}
		out = append(out, part)
	}
	return out
}

// keywordRule assigns label when the lower-cased text contains any keyword.
type keywordRule struct {
	label    string
	keywords []string
}

func (r keywordRule) matches(s string) bool {
	for _, k := range r.keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func facilityRules() []keywordRule {
	return []keywordRule{
		{string(types.FacilityTertiary), []string{"tertiary", "referral", "teaching"}},
		{string(types.FacilityDistrict), []string{"district"}},
		{string(types.FacilityPrivate), []string{"private"}},
		{string(types.FacilityRegional), []string{"regional"}},
	}
}

func specialityRules() []keywordRule {
	return []keywordRule{
		{"OBGYN", []string{"obst", "gyn"}},
		{"General Surgery", []string{"general"}},
		{"Orthopedics/Trauma", []string{"orthop", "trauma"}},
		{"Pediatrics", []string{"pediatr", "paediatr"}},
		{"Urology", []string{"urolog"}},
		{"Head & Neck", []string{"head and neck", "head & neck"}},
	}
}

func procedureRules() []keywordRule {
	return []keywordRule{
		{"Cesarean section", []string{"cesarean", "caesarean", "c-section"}},
		{"Laparotomy", []string{"laparotomy"}},
		{"Debridement", []string{"debridement"}},
		{"ORIF", []string{"orif", "open reduction"}},
		{"Amputation", []string{"amputation"}},
		{"Hernia repair", []string{"hernia"}},
		{"Appendectomy", []string{"appendect"}},
	}
}

// OtherLabel is assigned by the grouping functions when text is present but
// no keyword applies.
const OtherLabel = "Other"

// FacilityLevel guesses the facility level from the setting text. The first
// matching level wins; otherwise the level is unspecified.
func FacilityLevel(setting string) types.FacilityLevel {
	s := strings.ToLower(setting)
	for _, r := range facilityRules() {
		if r.matches(s) {
			return types.FacilityLevel(r.label)
		}
	}
	return types.FacilityUnspecified
}

// Specialities groups the surgical-speciality text into a sorted set of
// speciality labels.
func Specialities(text string) types.TagList {
	return groupLabels(text, specialityRules())
}

// Procedures groups the specific-procedures text into a sorted set of
// procedure labels.
func Procedures(text string) types.TagList {
	return groupLabels(text, procedureRules())
}

// groupLabels collects every matching label, sorted and unique. Non-empty
// text with no match yields Other; blank text yields nil.
func groupLabels(text string, rules []keywordRule) types.TagList {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s := strings.ToLower(text)
	seen := make(map[string]bool)
	var out types.TagList
	for _, r := range rules {
		if r.matches(s) && !seen[r.label] {
			seen[r.label] = true
			out = append(out, r.label)
		}
	}
	if len(out) == 0 {
		return types.TagList{OtherLabel}
	}
	sort.Strings(out)
	return out
}
