package profile

import (
	"sort"
	"strings"
)

// FilterProjectsBySkill keeps the projects whose technologies contain the
// term as a case-insensitive substring. An empty term returns every project.
func (p *Profile) FilterProjectsBySkill(term string) []Project {
	if term == "" {
		return p.Projects
	}
	needle := strings.ToLower(strings.TrimSpace(term))

	matched := make([]Project, 0)
	for _, prj := range p.Projects {
		for _, tech := range prj.Technologies {
			if strings.Contains(strings.ToLower(tech), needle) {
				matched = append(matched, prj)
				break
			}
		}
	}
	return matched
}

// HasSkill reports whether the term case-insensitive-substring-matches any
// entry of the skills list.
func (p *Profile) HasSkill(term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

type SkillRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type SkillFrequency struct {
	Name      string `json:"name"`
	Frequency int    `json:"frequency"`
}

// Rated reports whether the profile carries any rating entries. Rated
// profiles rank skills by rating; unrated ones fall back to technology
// frequency. The two modes are never blended.
func (p *Profile) Rated() bool {
	return len(p.Rating) > 0
}

// SkillsByRating ranks every skill by its rating entry, defaulting to 0 when
// the map has no value for it. Ties keep the original skills order.
func (p *Profile) SkillsByRating() []SkillRating {
	ranked := make([]SkillRating, len(p.Skills))
	for i, s := range p.Skills {
		ranked[i] = SkillRating{Name: s, Rating: p.Rating[s]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	return ranked
}

// SkillsByFrequency counts, for every skill, the technology strings across
// projects and work experience that match the skill name case-insensitively
// (exact match, not substring). Skills that never occur keep frequency 0.
// Ties keep the original skills order.
func (p *Profile) SkillsByFrequency() []SkillFrequency {
	counts := make(map[string]int, len(p.Skills))
	for _, s := range p.Skills {
		counts[s] = 0
	}

	tally := func(technologies []string) {
		for _, tech := range technologies {
			for _, s := range p.Skills {
				if strings.EqualFold(s, tech) {
					counts[s]++
					break
				}
			}
		}
	}
	for _, prj := range p.Projects {
		tally(prj.Technologies)
	}
	for _, w := range p.Work {
		tally(w.Technologies)
	}

	ranked := make([]SkillFrequency, len(p.Skills))
	for i, s := range p.Skills {
		ranked[i] = SkillFrequency{Name: s, Frequency: counts[s]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})
	return ranked
}
