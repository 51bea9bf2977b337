// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import "strings"

// pathogenRule maps text containing any of match (and, when set, any of
// refine) to name; refineElse is used when refine is set but absent.
type pathogenRule struct {
	match      []string
	refine     []string
	name       string
	refineElse string
}

// pathogenRules is the standardization waterfall, checked top to bottom.
// Mammaliicoccus sciuri is tested before the coagulase-negative group it was
// historically filed under.
func pathogenRules() []pathogenRule {
	return []pathogenRule{
		{match: []string{"sciuri"}, name: "Mammaliicoccus sciuri"},
		{match: []string{"cons", "coagulase"}, name: "CoNS"},
		{match: []string{"s. aureus", "staphylococcus aureus"}, name: "Staphylococcus aureus"},
		{match: []string{"klebsiella"}, refine: []string{"pneumon"}, name: "Klebsiella pneumoniae", refineElse: "Klebsiella spp."},
		{match: []string{"e. coli", "escherichia coli"}, name: "Escherichia coli"},
		{match: []string{"pseudomonas"}, name: "Pseudomonas aeruginosa"},
		{match: []string{"acinetobacter"}, refine: []string{"baumannii"}, name: "Acinetobacter baumannii", refineElse: "Acinetobacter spp."},
		{match: []string{"enterococcus"}, name: "Enterococcus spp."},
		{match: []string{"proteus"}, name: "Proteus spp."},
		{match: []string{"citrobacter"}, name: "Citrobacter spp."},
		{match: []string{"enterobacter"}, name: "Enterobacter spp."},
	}
}

var consReplacer = strings.NewReplacer(
	"coagulase negative staphylococci", "cons",
	"coagulase-negative staphylococci", "cons",
)

// Pathogen maps a free-text pathogen name onto the canonical vocabulary.
// Unmatched text is returned trimmed so pathogens outside the vocabulary
// survive; blank text yields "".
func Pathogen(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	s := consReplacer.Replace(strings.ToLower(name))
	for _, r := range pathogenRules() {
		if !containsAny(s, r.match) {
			continue
		}
		if len(r.refine) > 0 && !containsAny(s, r.refine) {
			return r.refineElse
		}
		return r.name
	}
	return strings.TrimSpace(name)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
