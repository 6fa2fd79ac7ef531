package timeline

import (
	"sort"
	"time"

	"backend-travelshare/internal/activity"

	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// TemporalStatus classifies an activity against the evaluation instant. It
// is recomputed on every assembly pass and never stored.
type TemporalStatus string

const (
	StatusPast    TemporalStatus = "past"
	StatusCurrent TemporalStatus = "current"
	StatusFuture  TemporalStatus = "future"
)

// Classify places an activity in past/current/future relative to now. An
// activity without an end time stays current forever once its anchor has
// passed; that is the intended product behavior, not an oversight.
func Classify(a activity.Activity, now time.Time) TemporalStatus {
	anchor := a.AnchorTime()
	if a.EndTime != nil {
		if now.After(*a.EndTime) {
			return StatusPast
		}
		if !now.Before(anchor) {
			return StatusCurrent
		}
		return StatusFuture
	}
	if !now.Before(anchor) {
		return StatusCurrent
	}
	return StatusFuture
}

type StatusFilter string

const FilterAllStatuses StatusFilter = "all"

func ParseStatusFilter(s string) StatusFilter {
	switch s {
	case string(activity.StatusPlanned), string(activity.StatusInProgress), string(activity.StatusCompleted):
		return StatusFilter(s)
	default:
		return FilterAllStatuses
	}
}

// TypeFilter uses the presentation vocabulary, which is deliberately not 1:1
// with the activity type enum; matchesType holds the reconciliation table.
type TypeFilter string

const (
	FilterAllTypes   TypeFilter = "all"
	FilterFlight     TypeFilter = "flight"
	FilterHotel      TypeFilter = "hotel"
	FilterCarRental  TypeFilter = "car_rental"
	FilterRestaurant TypeFilter = "restaurant"
	FilterAttraction TypeFilter = "attraction"
	FilterCustom     TypeFilter = "custom"
)

func ParseTypeFilter(s string) TypeFilter {
	switch TypeFilter(s) {
	case FilterFlight, FilterHotel, FilterCarRental, FilterRestaurant, FilterAttraction, FilterCustom:
		return TypeFilter(s)
	default:
		return FilterAllTypes
	}
}

// matchesType maps filter vocabulary onto activity types. Transportation
// splits on airline metadata: entries carrying an airline are flights,
// the rest count as car rentals. Custom covers the free-form types.
func matchesType(a activity.Activity, f TypeFilter) bool {
	switch f {
	case FilterAllTypes:
		return true
	case FilterFlight:
		return a.Type == activity.TypeTransportation && a.MetaString("airline") != ""
	case FilterCarRental:
		return a.Type == activity.TypeTransportation && a.MetaString("airline") == ""
	case FilterHotel:
		return a.Type == activity.TypeAccommodation
	case FilterRestaurant:
		return a.Type == activity.TypeDining
	case FilterAttraction:
		return a.Type == activity.TypeSightseeing
	case FilterCustom:
		return a.Type == activity.TypeActivity || a.Type == activity.TypeNote || a.Type == activity.TypeOther
	default:
		return false
	}
}

// ApplyFilters keeps activities matching both predicates independently.
func ApplyFilters(activities []activity.Activity, status StatusFilter, typ TypeFilter) []activity.Activity {
	return lo.Filter(activities, func(a activity.Activity, _ int) bool {
		if status != FilterAllStatuses && a.Status != activity.Status(status) {
			return false
		}
		return matchesType(a, typ)
	})
}

// Grouped is the on-screen structure: dates in ascending order and the
// activities of each date in ascending anchor order.
type Grouped struct {
	Dates  []string
	ByDate map[string][]activity.Activity
}

// GroupByDate buckets activities by the calendar date of their anchor time.
// The sort is stable so equal anchors keep their input order.
func GroupByDate(activities []activity.Activity) Grouped {
	sorted := make([]activity.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnchorTime().Before(sorted[j].AnchorTime())
	})

	byDate := map[string][]activity.Activity{}
	for _, a := range sorted {
		date := a.AnchorTime().Format(dateLayout)
		byDate[date] = append(byDate[date], a)
	}

	dates := lo.Keys(byDate)
	// Lexicographic order on yyyy-mm-dd is chronological order.
	sort.Strings(dates)

	return Grouped{Dates: dates, ByDate: byDate}
}

// LivePosition is the single slot at which the live-location widget renders:
// immediately before Index within Date's activity list (Index equal to the
// list length means after the last activity).
type LivePosition struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
}

// ResolveLivePosition finds the first not-yet-started activity scanning
// dates and within-date order chronologically. With no upcoming activity the
// widget lands after the last activity of the last date, and with no
// activities at all it stands alone on today's date.
func ResolveLivePosition(g Grouped, now time.Time) LivePosition {
	for _, date := range g.Dates {
		for i, a := range g.ByDate[date] {
			if a.AnchorTime().After(now) {
				return LivePosition{Date: date, Index: i}
			}
		}
	}

	if len(g.Dates) > 0 {
		last := g.Dates[len(g.Dates)-1]
		return LivePosition{Date: last, Index: len(g.ByDate[last])}
	}

	return LivePosition{Date: now.Format(dateLayout), Index: 0}
}

// DateLabel renders a grouped date for display. It works on the same
// yyyy-mm-dd strings used for grouping, so the label can never drift from
// the bucket it heads.
func DateLabel(date string, now time.Time) string {
	switch date {
	case now.Format(dateLayout):
		return "Today"
	case now.AddDate(0, 0, 1).Format(dateLayout):
		return "Tomorrow"
	case now.AddDate(0, 0, -1).Format(dateLayout):
		return "Yesterday"
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}
