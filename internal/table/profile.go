package table

import "strings"

const maxSamples = 3

// ColumnProfile summarizes one column for column pickers and previews
type ColumnProfile struct {
	Column   Column   `json:"column"`
	NonEmpty int      `json:"non_empty"`
	Distinct int      `json:"distinct"`
	Samples  []string `json:"samples"`
}

// Profile describes every column of the table in order
func Profile(t *Table) []ColumnProfile {
	profiles := make([]ColumnProfile, t.Width())

	for i, c := range t.columns {
		seen := make(map[string]bool)
		p := ColumnProfile{Column: c}

		for _, row := range t.rows {
			v := row[i]
			if v.IsBlank() {
				continue
			}
			p.NonEmpty++

			text := strings.TrimSpace(v.String())
			if seen[text] {
				continue
			}
			seen[text] = true
			if len(p.Samples) < maxSamples {
				p.Samples = append(p.Samples, text)
			}
		}

		p.Distinct = len(seen)
		profiles[i] = p
	}

	return profiles
}

// Hint renders the samples as a short comma separated string
func (p ColumnProfile) Hint() string {
	if len(p.Samples) == 0 {
		return "(empty)"
	}
	return strings.Join(p.Samples, ", ")
}
