package dto

import (
	"time"

	"group-planner/modules/suggestion/entity"
)

// ===================== Requests =====================

// UpsertPreferenceRequest is the body for saving a member's location and
// venue preferences within a group
type UpsertPreferenceRequest struct {
	Address            *string  `json:"address,omitempty"`
	Preferences        []string `json:"preferences"`
	FreeTextPreference *string  `json:"free_text_preference,omitempty"`
}

// ===================== Responses =====================

// PreferenceResponse mirrors a saved member preference row
type PreferenceResponse struct {
	GroupID            string    `json:"group_id"`
	MemberID           string    `json:"member_id"`
	Address            *string   `json:"address,omitempty"`
	Preferences        []string  `json:"preferences"`
	FreeTextPreference *string   `json:"free_text_preference,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProfileCategoryResponse is one category of the group consensus with its
// display label attached
type ProfileCategoryResponse struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage_of_members"`
}

// ProfileResponse is the aggregated group preference profile
type ProfileResponse struct {
	TotalMembers int                       `json:"total_members"`
	Categories   []ProfileCategoryResponse `json:"categories"`
}

// CenterResponse is the resolved group center point
type CenterResponse struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// SuggestionsResponse is the full ranked suggestion run output. It is also
// the persisted cache value, so a cache hit replays it verbatim.
type SuggestionsResponse struct {
	GroupID     string              `json:"group_id"`
	Center      CenterResponse      `json:"center"`
	Suggestions []entity.Suggestion `json:"suggestions"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ===================== Converters =====================

// ToPreferenceResponse converts an entity row to its API shape
func ToPreferenceResponse(pref *entity.MemberLocationPreference) *PreferenceResponse {
	return &PreferenceResponse{
		GroupID:            pref.GroupID.String(),
		MemberID:           pref.MemberID.String(),
		Address:            pref.Address,
		Preferences:        pref.Preferences,
		FreeTextPreference: pref.FreeTextPreference,
		UpdatedAt:          pref.UpdatedAt,
	}
}

// ToProfileResponse converts the aggregated profile, attaching display labels
func ToProfileResponse(profile *entity.GroupPreferenceProfile) *ProfileResponse {
	categories := make([]ProfileCategoryResponse, 0, len(profile.Categories))
	for _, c := range profile.Categories {
		cfg, _ := entity.ConfigFor(c.Category)
		categories = append(categories, ProfileCategoryResponse{
			Category:   string(c.Category),
			Label:      cfg.Label,
			Count:      c.Count,
			Percentage: c.Percentage,
		})
	}
	return &ProfileResponse{
		TotalMembers: profile.TotalMembers,
		Categories:   categories,
	}
}
