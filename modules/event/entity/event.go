package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCancelled EventStatus = "cancelled"
)

// DefaultTimezone is the IANA zone event times are presented in
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Event is a planned group outing. It starts pending, gets a time window
// from the availability grid and a venue from the suggestion engine, and
// becomes scheduled once both are set.
type Event struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	GroupID     uuid.UUID   `db:"group_id" json:"group_id"`
	CreatorID   uuid.UUID   `db:"creator_id" json:"creator_id"`
	Title       string      `db:"title" json:"title"`
	Description *string     `db:"description" json:"description,omitempty"`
	Status      EventStatus `db:"status" json:"status"`
	Timezone    string      `db:"timezone" json:"timezone"`

	StartTime *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime   *time.Time `db:"end_time" json:"end_time,omitempty"`

	VenueName     *string  `db:"venue_name" json:"venue_name,omitempty"`
	VenueAddress  *string  `db:"venue_address" json:"venue_address,omitempty"`
	VenueCategory *string  `db:"venue_category" json:"venue_category,omitempty"`
	VenueLat      *float64 `db:"venue_lat" json:"venue_lat,omitempty"`
	VenueLng      *float64 `db:"venue_lng" json:"venue_lng,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
