package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"group-planner/core/config"
	"group-planner/core/constants"
	"group-planner/core/logger"
	"group-planner/modules/suggestion/entity"
)

// PlaceSearcher finds named places near a point for a free-text keyword.
// A failed or empty lookup yields zero candidates, never an error the
// caller has to abort on.
type PlaceSearcher interface {
	Search(ctx context.Context, keyword string, near entity.GeoPoint, limit int) ([]entity.Candidate, error)
}

// NominatimSearcher queries the Nominatim search endpoint with a viewport
// biased around the group's center.
type NominatimSearcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewNominatimSearcher(cfg config.GeoConfig, limiter *rate.Limiter) *NominatimSearcher {
	return &NominatimSearcher{
		baseURL:   cfg.NominatimBaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: constants.ExternalCallTimeout},
		limiter:   limiter,
	}
}

// Search returns up to limit places matching the keyword near the point.
// Roughly 0.15 degrees of latitude is the candidate radius cap, so the
// viewport box stays slightly wider than the distance filter downstream.
func (s *NominatimSearcher) Search(ctx context.Context, keyword string, near entity.GeoPoint, limit int) ([]entity.Candidate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	const boxDelta = 0.15
	viewbox := fmt.Sprintf("%f,%f,%f,%f",
		near.Lng-boxDelta, near.Lat+boxDelta,
		near.Lng+boxDelta, near.Lat-boxDelta)

	endpoint := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=%d&viewbox=%s&bounded=1&accept-language=vi",
		s.baseURL, url.QueryEscape(keyword), limit, url.QueryEscape(viewbox))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim search returned status %d", resp.StatusCode)
	}

	var results []struct {
		PlaceID     int64  `json:"place_id"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	candidates := make([]entity.Candidate, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			logger.Warn("PlaceSearcher:Search:BadCoordinates", "name", r.Name, "lat", r.Lat, "lon", r.Lon)
			continue
		}

		name := r.Name
		if name == "" {
			name = r.DisplayName
		}
		candidates = append(candidates, entity.Candidate{
			PlaceID: strconv.FormatInt(r.PlaceID, 10),
			Name:    name,
			Address: r.DisplayName,
			Lat:     lat,
			Lng:     lng,
		})
	}

	return candidates, nil
}
