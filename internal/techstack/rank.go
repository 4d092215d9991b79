package techstack

import (
	"math"
	"sort"
)

// RankedEntry is one row of a top-N view over a frequency table.
type RankedEntry struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopN converts a frequency table into a ranked list truncated to n
// entries. Descending by count; ties sort by name so output is
// deterministic. Percentage is the entry's share of the table total,
// rounded to one decimal — the column need not sum to exactly 100.
// An empty table yields nil, which marshals as an absent key.
func TopN(counts map[string]int, n int) []RankedEntry {
	if len(counts) == 0 {
		return nil
	}

	total := 0
	names := make([]string, 0, len(counts))
	for name, count := range counts {
		total += count
		names = append(names, name)
	}
	sort.Strings(names)
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	if n > 0 && len(names) > n {
		names = names[:n]
	}

	out := make([]RankedEntry, len(names))
	for i, name := range names {
		out[i] = RankedEntry{
			Name:       name,
			Count:      counts[name],
			Percentage: roundShare(counts[name], total),
		}
	}
	return out
}

func roundShare(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
