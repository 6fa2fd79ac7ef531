package timeline

import (
	"time"

	"backend-travelshare/internal/activity"
	"backend-travelshare/internal/daynote"
	"backend-travelshare/internal/location"
	"backend-travelshare/internal/social"
	"backend-travelshare/internal/trip"

	"github.com/samber/lo"
)

// Capabilities reports what the effective role may do with this trip. The
// booleans are the contract the client renders against; the mutation routes
// re-check the same matrix server side.
type Capabilities struct {
	CanComment        bool `json:"can_comment"`
	CanReact          bool `json:"can_react"`
	CanAddDayNote     bool `json:"can_add_day_note"`
	CanAddActivity    bool `json:"can_add_activity"`
	CanEditActivity   bool `json:"can_edit_activity"`
	CanManageTrip     bool `json:"can_manage_trip"`
	CanViewLocation   bool `json:"can_view_location"`
	CanShareLocation  bool `json:"can_share_location"`
	CanManageLocation bool `json:"can_manage_location"`
}

func CapabilitiesFor(role trip.Role, perms trip.LocationPermissions) Capabilities {
	access := perms.For(role)
	return Capabilities{
		CanComment:        role.CanComment(),
		CanReact:          role.CanComment(),
		CanAddDayNote:     role.CanComment(),
		CanAddActivity:    role.CanEditActivities(),
		CanEditActivity:   role.CanEditActivities(),
		CanManageTrip:     role.CanManageTrip(),
		CanViewLocation:   access.CanView,
		CanShareLocation:  access.CanShare,
		CanManageLocation: access.CanManage,
	}
}

// ActivityView augments an activity with its computed temporal status and
// the comments and reactions attached to it.
type ActivityView struct {
	activity.Activity
	TemporalStatus TemporalStatus    `json:"temporal_status"`
	Comments       []social.Comment  `json:"comments"`
	Reactions      []social.Reaction `json:"reactions"`
}

// Day is one date section of the feed. LiveIndex is the slot of the live
// location widget within Activities (len means after the last activity);
// -1 when the widget does not render in this day.
type Day struct {
	Date       string           `json:"date"`
	Label      string           `json:"label"`
	Note       *daynote.DayNote `json:"note,omitempty"`
	Activities []ActivityView   `json:"activities"`
	LiveIndex  int              `json:"live_index"`
}

// Feed is the assembled, role-filtered timeline for one viewer.
type Feed struct {
	EffectiveRole     trip.Role         `json:"effective_role"`
	Capabilities      Capabilities      `json:"capabilities"`
	Days              []Day             `json:"days"`
	Live              *LivePosition     `json:"live,omitempty"`
	ActiveLocations   []location.Update `json:"active_locations,omitempty"`
	TotalActivities   int               `json:"total_activities"`
	MatchedActivities int               `json:"matched_activities"`
}

// Snapshot carries the five immutable input collections for one assembly
// pass. Mutations happen elsewhere and produce a fresh snapshot; the feed is
// recomputed from scratch each time.
type Snapshot struct {
	Activities []activity.Activity
	Comments   []social.Comment
	Reactions  []social.Reaction
	DayNotes   []daynote.DayNote
	Locations  []location.Update
}

// Assemble merges the snapshot into a single chronologically ordered,
// role-filtered feed. It is a pure function of its inputs and the supplied
// instant.
func Assemble(snap Snapshot, role trip.Role, perms trip.LocationPermissions, status StatusFilter, typ TypeFilter, now time.Time) Feed {
	caps := CapabilitiesFor(role, perms)

	filtered := ApplyFilters(snap.Activities, status, typ)
	grouped := GroupByDate(filtered)

	commentsByActivity := lo.GroupBy(snap.Comments, func(c social.Comment) string { return c.ActivityID })
	reactionsByActivity := lo.GroupBy(snap.Reactions, func(r social.Reaction) string { return r.ActivityID })
	notesByDate := lo.KeyBy(snap.DayNotes, func(n daynote.DayNote) string { return n.Date })

	feed := Feed{
		EffectiveRole:     role,
		Capabilities:      caps,
		TotalActivities:   len(snap.Activities),
		MatchedActivities: len(filtered),
	}

	showLive := caps.CanViewLocation && len(snap.Locations) > 0
	var live LivePosition
	if showLive {
		live = ResolveLivePosition(grouped, now)
		feed.Live = &live
		feed.ActiveLocations = location.Active(snap.Locations, now)
	}

	for _, date := range grouped.Dates {
		day := Day{
			Date:      date,
			Label:     DateLabel(date, now),
			LiveIndex: -1,
		}
		if note, ok := notesByDate[date]; ok {
			n := note
			day.Note = &n
		}
		if showLive && live.Date == date {
			day.LiveIndex = live.Index
		}
		for _, a := range grouped.ByDate[date] {
			day.Activities = append(day.Activities, ActivityView{
				Activity:       a,
				TemporalStatus: Classify(a, now),
				Comments:       commentsByActivity[a.ID],
				Reactions:      reactionsByActivity[a.ID],
			})
		}
		feed.Days = append(feed.Days, day)
	}

	return feed
}
