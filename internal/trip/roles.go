package trip

// Role is a trip membership tier. Tiers are strictly ordered by capability
// (admin > participant > commentor > viewer) for everything except location
// access, which each trip configures per role.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
	RoleCommentor   Role = "commentor"
	RoleViewer      Role = "viewer"
)

// ParseRole maps unknown strings to the most restrictive role so a corrupted
// role value degrades to read-only instead of over-granting.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleParticipant, RoleCommentor, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

func (r Role) CanEditActivities() bool {
	return r == RoleAdmin || r == RoleParticipant
}

func (r Role) CanComment() bool {
	return r == RoleAdmin || r == RoleParticipant || r == RoleCommentor
}

func (r Role) CanManageTrip() bool {
	return r == RoleAdmin
}

// Effective resolves the role used for permission checks. Admins may preview
// the trip as a lower role; everyone else keeps their real role regardless of
// the requested preview.
func Effective(actual Role, viewAs string) Role {
	if viewAs == "" || actual != RoleAdmin {
		return actual
	}
	return ParseRole(viewAs)
}

// LocationAccess holds the three location capabilities for one role.
type LocationAccess struct {
	CanView   bool `json:"canView"`
	CanShare  bool `json:"canShare"`
	CanManage bool `json:"canManage"`
}

// LocationPermissions is per-trip configuration, stored on the trip record
// and editable only by roles whose own access has CanManage set.
type LocationPermissions struct {
	Admin       LocationAccess `json:"admin"`
	Participant LocationAccess `json:"participant"`
	Commentor   LocationAccess `json:"commentor"`
	Viewer      LocationAccess `json:"viewer"`
}

func DefaultLocationPermissions() LocationPermissions {
	return LocationPermissions{
		Admin:       LocationAccess{CanView: true, CanShare: true, CanManage: true},
		Participant: LocationAccess{CanView: true, CanShare: true},
		Commentor:   LocationAccess{CanView: true},
		Viewer:      LocationAccess{},
	}
}

func (p LocationPermissions) For(r Role) LocationAccess {
	switch r {
	case RoleAdmin:
		return p.Admin
	case RoleParticipant:
		return p.Participant
	case RoleCommentor:
		return p.Commentor
	default:
		return p.Viewer
	}
}
