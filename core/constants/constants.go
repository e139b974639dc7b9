package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Request handling
const (
	DefaultRequestTimeout = 15 * time.Second
)

// Database defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Scheduling defaults
const (
	DefaultTimezone  = "Asia/Ho_Chi_Minh"
	GridHourStart    = 7  // first hour bucket of the availability grid (07:00)
	GridHourEnd      = 22 // last hour bucket (22:00-23:00)
	BlockThresholdPC = 60 // minimum availability percentage for a viable block
)

// Suggestion engine defaults
const (
	SuggestionCacheTTL     = 30 * time.Minute
	GeocodeCacheTTL        = 24 * time.Hour
	MaxSuggestions         = 20
	MaxCandidatesPerSearch = 2
	MaxCandidateDistanceKm = 12.0
	ExternalCallTimeout    = 10 * time.Second
)
