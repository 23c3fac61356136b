package analytics

import (
	"sort"

	"github.com/honeynutbd/landing_shop/internal/models"
)

const topN = 5

type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type TrafficSummary struct {
	TotalVisitors  int        `json:"total_visitors"`
	UniqueVisitors int        `json:"unique_visitors"`
	TopPaths       []KeyCount `json:"top_paths"`
	TopReferrers   []KeyCount `json:"top_referrers"`
}

// Summarize reduces raw traffic rows to the dashboard overview: totals,
// distinct IPs and the five busiest paths and external referrers.
func Summarize(rows []models.Traffic) TrafficSummary {
	ips := make(map[string]struct{})
	paths := make(map[string]int)
	referrers := make(map[string]int)

	for _, t := range rows {
		if t.IPAddress != "" {
			ips[t.IPAddress] = struct{}{}
		}

		path := t.Path
		if path == "" {
			path = "Unknown"
		}
		paths[path]++

		// Empty referrer means a direct visit; those stay out of the top list.
		if t.Referrer != "" {
			referrers[t.Referrer]++
		}
	}

	return TrafficSummary{
		TotalVisitors:  len(rows),
		UniqueVisitors: len(ips),
		TopPaths:       top(paths, topN),
		TopReferrers:   top(referrers, topN),
	}
}

func top(m map[string]int, n int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for k, v := range m {
		out = append(out, KeyCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
