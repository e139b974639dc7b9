package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MemberLocationPreference is one member's location and venue preferences for
// a group. One row per member per group, upserted by the member.
type MemberLocationPreference struct {
	GroupID            uuid.UUID      `db:"group_id" json:"group_id"`
	MemberID           uuid.UUID      `db:"member_id" json:"member_id"`
	Address            *string        `db:"address" json:"address,omitempty"`
	Preferences        pq.StringArray `db:"preferences" json:"preferences"`
	FreeTextPreference *string        `db:"free_text_preference" json:"free_text_preference,omitempty"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// CategoryCount is one entry of the group preference profile
type CategoryCount struct {
	Category   CategoryID `json:"category"`
	Count      int        `json:"count"`
	Percentage int        `json:"percentage_of_members"`
}

// GroupPreferenceProfile is the per-category consensus of a group, sorted
// descending by count. Categories no member selected are absent.
type GroupPreferenceProfile struct {
	TotalMembers int             `json:"total_members"`
	Categories   []CategoryCount `json:"categories"`
}

// CountFor returns the member count for a category (0 when absent)
func (p *GroupPreferenceProfile) CountFor(id CategoryID) int {
	for _, c := range p.Categories {
		if c.Category == id {
			return c.Count
		}
	}
	return 0
}

// IsEmpty reports whether no member selected any preference
func (p *GroupPreferenceProfile) IsEmpty() bool {
	return len(p.Categories) == 0
}

// GeoPoint is a WGS84 coordinate in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GroupCenter is the centroid of all geocoded member addresses plus a
// human-readable label
type GroupCenter struct {
	GeoPoint
	Label string `json:"label"`
}

// Candidate is a venue returned by external search, pre-scoring
type Candidate struct {
	PlaceID              string     `json:"place_id"`
	Name                 string     `json:"name"`
	Category             CategoryID `json:"category"`
	Address              string     `json:"address"`
	Lat                  float64    `json:"lat"`
	Lng                  float64    `json:"lng"`
	DistanceFromCenterKm float64    `json:"distance_from_center_km"`
}

// Suggestion is a scored, ranked candidate. Never mutated after creation
// within a run.
type Suggestion struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       CategoryID `json:"category"`
	Address        string     `json:"address"`
	MatchRate      int        `json:"match_rate"`
	DistanceKm     float64    `json:"distance_km"`
	PriceRangeTier string     `json:"price_range_tier"`
	MatchReasons   []string   `json:"match_reasons"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
}
