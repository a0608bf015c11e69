package merge

import (
	"fmt"
	"sort"
	"strings"

	"sheetMerge/internal/table"
)

// Separator joins the distinct values collected for one key
const Separator = " | "

// aggregate groups rows by the normalized key column and reduces each
// group's non-empty values of valueCol to a sorted, de-duplicated,
// Separator-joined string. Every key present in the table gets an entry,
// even when all of its values are blank. Rows with a blank key form no
// group. keys lists the groups in first-seen order.
func aggregate(t *table.Table, keyCol, valueCol int, norm *keyNormalizer) (groups map[string]string, keys []string) {
	sets := make(map[string]map[string]struct{})

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)

		key := norm.Key(row[keyCol])
		if key == "" {
			continue
		}
		set, ok := sets[key]
		if !ok {
			set = make(map[string]struct{})
			sets[key] = set
			keys = append(keys, key)
		}

		v := row[valueCol]
		if v.IsBlank() {
			continue
		}
		set[v.String()] = struct{}{}
	}

	groups = make(map[string]string, len(sets))
	for key, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		groups[key] = strings.Join(values, Separator)
	}
	return groups, keys
}

// Aggregate reduces the value column of t per normalized key, see aggregate
func Aggregate(t *table.Table, key, value table.Column) (map[string]string, error) {
	keyCol, ok := t.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("column %q not found", key)
	}
	valueCol, ok := t.Lookup(value)
	if !ok {
		return nil, fmt.Errorf("column %q not found", value)
	}

	groups, _ := aggregate(t, keyCol, valueCol, newKeyNormalizer())
	return groups, nil
}
