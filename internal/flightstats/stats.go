package flightstats

import (
	"sort"
	"strings"

	"backend-travelshare/internal/activity"

	"github.com/samber/lo"
)

const kmToMiles = 0.621371

// AirlineCount is one row of the airline frequency ranking.
type AirlineCount struct {
	Airline string  `json:"airline"`
	Count   int     `json:"count"`
	Share   float64 `json:"share"`
}

// Stats are the summary figures over a user's full flight history. They are
// always computed over the unfiltered set; search narrows the list only.
type Stats struct {
	TotalFlights       int                 `json:"total_flights"`
	AvgDurationMinutes float64             `json:"avg_duration_minutes"`
	AvgDistanceKm      float64             `json:"avg_distance_km"`
	AvgDistanceMiles   float64             `json:"avg_distance_miles"`
	Airlines           []AirlineCount      `json:"airlines"`
	Flights            []activity.Activity `json:"flights"`
}

// IsFlight reports whether an activity counts as a flight: transportation
// carrying an airline in its metadata.
func IsFlight(a activity.Activity) bool {
	return a.Type == activity.TypeTransportation && a.MetaString("airline") != ""
}

// Compute derives the flight statistics for a set of flights. Activities
// missing a numeric field are excluded from that average entirely rather
// than counted as zero.
func Compute(flights []activity.Activity) Stats {
	stats := Stats{
		TotalFlights:       len(flights),
		AvgDurationMinutes: meanMeta(flights, "durationMinutes"),
		AvgDistanceKm:      meanMeta(flights, "distanceKm"),
		Airlines:           rankAirlines(flights),
	}
	stats.AvgDistanceMiles = stats.AvgDistanceKm * kmToMiles

	// Recency view: most recent first, the inverse of the itinerary order.
	sorted := make([]activity.Activity, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnchorTime().After(sorted[j].AnchorTime())
	})
	stats.Flights = sorted

	return stats
}

func meanMeta(flights []activity.Activity, key string) float64 {
	var sum float64
	var n int
	for _, f := range flights {
		if v, ok := f.MetaNumber(key); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// rankAirlines counts flights per airline, descending, ties kept in
// first-encountered order.
func rankAirlines(flights []activity.Activity) []AirlineCount {
	counts := map[string]int{}
	var order []string
	for _, f := range flights {
		airline := f.MetaString("airline")
		if _, seen := counts[airline]; !seen {
			order = append(order, airline)
		}
		counts[airline]++
	}

	ranking := lo.Map(order, func(airline string, _ int) AirlineCount {
		return AirlineCount{Airline: airline, Count: counts[airline]}
	})
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	total := len(flights)
	for i := range ranking {
		ranking[i].Share = float64(ranking[i].Count) / float64(total)
	}
	return ranking
}

// Search filters the flight list by a case-insensitive substring match over
// title, airline, flight number and airport codes.
func Search(flights []activity.Activity, query string) []activity.Activity {
	if query == "" {
		return flights
	}
	q := strings.ToLower(query)
	return lo.Filter(flights, func(f activity.Activity, _ int) bool {
		for _, field := range []string{
			f.Title,
			f.MetaString("airline"),
			f.MetaString("flightNumber"),
			f.MetaString("departureAirport"),
			f.MetaString("arrivalAirport"),
		} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	})
}
