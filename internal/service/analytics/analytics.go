// Package analytics buckets timestamped records into fixed-size chart
// series. All functions are pure: "now" is a parameter, never a live clock.
package analytics

import (
	"fmt"
	"time"

	"github.com/honeynutbd/landing_shop/internal/models"
)

type Period string

const (
	PeriodDaily       Period = "daily"
	PeriodWeekly      Period = "weekly"
	PeriodFortnightly Period = "fortnightly"
	PeriodMonthly     Period = "monthly"
	PeriodTwoMonth    Period = "two_month"
)

// Periods lists every supported period, dashboard order.
var Periods = []Period{
	PeriodDaily,
	PeriodWeekly,
	PeriodFortnightly,
	PeriodMonthly,
	PeriodTwoMonth,
}

// Window is how far back a period's series reaches; callers use it to
// bound the store query feeding Aggregate.
func (p Period) Window() time.Duration {
	switch p {
	case PeriodDaily:
		return 24 * time.Hour
	case PeriodWeekly:
		return 7 * 24 * time.Hour
	case PeriodFortnightly:
		return 14 * 24 * time.Hour
	case PeriodMonthly:
		return 30 * 24 * time.Hour
	case PeriodTwoMonth:
		return 60 * 24 * time.Hour
	}
	return 0
}

type Record struct {
	Timestamp time.Time
	Value     int64
}

type Series struct {
	Labels   []string `json:"labels"`
	Counts   []int    `json:"counts"`
	Revenues []int64  `json:"revenues,omitempty"`
}

type bucketing struct {
	count int
	// width in the period's native unit: hours for daily, days otherwise
	width int
}

func (p Period) buckets() (bucketing, error) {
	switch p {
	case PeriodDaily:
		return bucketing{count: 24, width: 1}, nil
	case PeriodWeekly:
		return bucketing{count: 7, width: 1}, nil
	case PeriodFortnightly:
		return bucketing{count: 7, width: 2}, nil
	case PeriodMonthly:
		return bucketing{count: 6, width: 5}, nil
	case PeriodTwoMonth:
		return bucketing{count: 8, width: 7}, nil
	}
	return bucketing{}, fmt.Errorf("unknown period %q", p)
}

// Aggregate buckets records into the period's series, accumulating both
// counts and revenues (Record.Value). Records outside the window are
// dropped; the series always has the full bucket count.
func Aggregate(period Period, now time.Time, records []Record) (*Series, error) {
	return aggregate(period, now, records, true)
}

// AggregateCounts is Aggregate without the revenue column, for traffic.
func AggregateCounts(period Period, now time.Time, records []Record) (*Series, error) {
	return aggregate(period, now, records, false)
}

func aggregate(period Period, now time.Time, records []Record, withRevenue bool) (*Series, error) {
	b, err := period.buckets()
	if err != nil {
		return nil, err
	}

	s := &Series{
		Labels: labels(period, now, b),
		Counts: make([]int, b.count),
	}
	if withRevenue {
		s.Revenues = make([]int64, b.count)
	}

	for _, rec := range records {
		ago, ok := periodsAgo(period, now, rec.Timestamp, b.width)
		if !ok || ago >= b.count {
			continue
		}
		slot := b.count - 1 - ago
		s.Counts[slot]++
		if withRevenue {
			s.Revenues[slot] += rec.Value
		}
	}
	return s, nil
}

// periodsAgo computes how many whole buckets back a timestamp lies.
// ok is false for records newer than "now" (clock skew): the negative
// age must be rejected before the integer division, otherwise Go's
// truncation toward zero would fold a future record into slot zero.
func periodsAgo(period Period, now, ts time.Time, width int) (int, bool) {
	if period == PeriodDaily {
		d := now.Sub(ts)
		if d < 0 {
			return 0, false
		}
		return int(d.Hours()), true
	}

	days := calendarDaysBetween(now, ts)
	if days < 0 {
		return 0, false
	}
	return days / width, true
}

// calendarDaysBetween is a midnight-to-midnight date difference. Hour
// arithmetic is deliberately avoided for day-granularity buckets: elapsed
// seconds misclassify records near midnight and drift across DST.
func calendarDaysBetween(now, ts time.Time) int {
	ny, nm, nd := now.Date()
	ty, tm, td := ts.Date()
	a := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

func labels(period Period, now time.Time, b bucketing) []string {
	out := make([]string, 0, b.count)
	switch period {
	case PeriodDaily:
		for i := b.count - 1; i >= 0; i-- {
			t := now.Add(-time.Duration(i) * time.Hour)
			out = append(out, fmt.Sprintf("%02d:00", t.Hour()))
		}
	case PeriodWeekly:
		for i := b.count - 1; i >= 0; i-- {
			out = append(out, now.AddDate(0, 0, -i).Format("Mon"))
		}
	default:
		for i := b.count - 1; i >= 0; i-- {
			t := now.AddDate(0, 0, -i*b.width)
			out = append(out, t.Format("02/01"))
		}
	}
	return out
}

// OrderRecords adapts orders for Aggregate; Value carries the total price
// so revenues accumulate per bucket.
func OrderRecords(orders []models.Order) []Record {
	out := make([]Record, len(orders))
	for i, o := range orders {
		out[i] = Record{Timestamp: o.Timestamp, Value: o.TotalPrice}
	}
	return out
}

// TrafficRecords adapts traffic rows for AggregateCounts.
func TrafficRecords(rows []models.Traffic) []Record {
	out := make([]Record, len(rows))
	for i, t := range rows {
		out[i] = Record{Timestamp: t.Timestamp}
	}
	return out
}
