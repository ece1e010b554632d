package scoring

import (
	"math"
	"strings"
)

// Normalize returns the canonical comparison form of a skill label:
// lower-cased with surrounding whitespace removed. Idempotent. Skills are
// stored as entered; normalization happens at comparison time only.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Covers reports whether a candidate skill satisfies a required skill.
// After normalizing both, either side containing the other counts as a
// match, so "React" covers "React.js" and the reverse. The rule is loose
// on purpose: "Java" also covers "JavaScript". Ranking fixtures depend on
// that behavior, so it must not be tightened here.
func Covers(candidateSkill, requiredSkill string) bool {
	cs := Normalize(candidateSkill)
	rs := Normalize(requiredSkill)
	if cs == "" || rs == "" {
		return false
	}
	return strings.Contains(cs, rs) || strings.Contains(rs, cs)
}

// MatchSkills splits requiredSkills into the normalized subset satisfied by
// at least one candidate skill and the normalized complement. Output order
// follows requiredSkills, not candidate order. Empty requiredSkills yields
// two empty slices.
func MatchSkills(candidateSkills, requiredSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0)

	for _, req := range requiredSkills {
		found := false
		for _, cand := range candidateSkills {
			if Covers(cand, req) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, Normalize(req))
		} else {
			missing = append(missing, Normalize(req))
		}
	}

	return matched, missing
}

// MatchPercentage is the rounded matched/required ratio on a 0-100 scale.
// Zero required skills is a data-quality problem upstream; the percentage
// is defined as 0 rather than dividing by zero.
func MatchPercentage(matchedCount, requiredCount int) int {
	if requiredCount <= 0 {
		return 0
	}
	pct := float64(matchedCount) * 100.0 / float64(requiredCount)
	return int(math.Round(pct))
}
