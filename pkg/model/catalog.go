package model

import "strings"

// FilterSummaries keeps the projects whose name, description or any tag value
// contains query, ignoring case. An empty query keeps everything.
func FilterSummaries(list []Summary, query string) []Summary {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return list
	}
	out := make([]Summary, 0, len(list))
	for _, summary := range list {
		if matchesSummary(summary, needle) {
			out = append(out, summary)
		}
	}
	return out
}

func matchesSummary(summary Summary, needle string) bool {
	if strings.Contains(strings.ToLower(summary.ModelName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(summary.Description), needle) {
		return true
	}
	for _, value := range summary.Tags {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}
