package trip

import "time"

type Trip struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CoverImage  string    `json:"cover_image,omitempty"`
	OwnerID     string    `json:"owner_id"`
	IsPublic    bool      `json:"is_public"`
	IsArchived  bool      `json:"is_archived"`

	LocationPermissions LocationPermissions `json:"location_permissions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch carries a partial trip update. IsPublic is a pointer so an explicit
// false is distinguishable from an absent field, letting a public trip be
// made private again.
type Patch struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CoverImage  string    `json:"cover_image"`
	IsPublic    *bool     `json:"is_public"`
}

type Member struct {
	TripID   string    `json:"trip_id"`
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type Invitation struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	AcceptedAt time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
