package dto

import (
	"time"

	"group-planner/modules/event/entity"
)

// ===================== Requests =====================

// CreateEventRequest creates a pending event for a group
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ScheduleEventRequest pins an event to a time window, typically one picked
// from the availability grid's high-consensus blocks
type ScheduleEventRequest struct {
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
}

// SetVenueRequest attaches a venue, typically one of the generated
// suggestions
type SetVenueRequest struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// ===================== Responses =====================

// EventResponse is the API shape of an event
type EventResponse struct {
	ID          string     `json:"id"`
	GroupID     string     `json:"group_id"`
	CreatorID   string     `json:"creator_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Timezone    string     `json:"timezone"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`

	VenueName     string   `json:"venue_name,omitempty"`
	VenueAddress  string   `json:"venue_address,omitempty"`
	VenueCategory string   `json:"venue_category,omitempty"`
	VenueLat      *float64 `json:"venue_lat,omitempty"`
	VenueLng      *float64 `json:"venue_lng,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ===================== Converters =====================

func ToEventResponse(e *entity.Event) *EventResponse {
	resp := &EventResponse{
		ID:        e.ID.String(),
		GroupID:   e.GroupID.String(),
		CreatorID: e.CreatorID.String(),
		Title:     e.Title,
		Status:    string(e.Status),
		Timezone:  e.Timezone,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		VenueLat:  e.VenueLat,
		VenueLng:  e.VenueLng,
		CreatedAt: e.CreatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	if e.VenueName != nil {
		resp.VenueName = *e.VenueName
	}
	if e.VenueAddress != nil {
		resp.VenueAddress = *e.VenueAddress
	}
	if e.VenueCategory != nil {
		resp.VenueCategory = *e.VenueCategory
	}
	return resp
}
