package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"group-planner/core/config"
	"group-planner/core/constants"
	"group-planner/core/logger"
	"group-planner/modules/suggestion/entity"
)

// Geocoder resolves addresses to coordinates and back. A lookup that the
// provider cannot resolve is a miss (nil / empty), not an error; errors are
// reserved for transport failures, and callers treat both as "no data".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*entity.GeoPoint, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// geocodeProvider is one strategy in the ordered fallback chain
type geocodeProvider interface {
	name() string
	geocode(ctx context.Context, address string) (*entity.GeoPoint, error)
}

// HTTPGeocoder chains Photon and Nominatim (first success wins), throttles
// outbound calls through a shared token bucket, and caches resolved points.
type HTTPGeocoder struct {
	providers []geocodeProvider
	reverse   *nominatimProvider
	limiter   *rate.Limiter
	cache     *lru.LRU[string, entity.GeoPoint]
}

// NewHTTPGeocoder builds the provider chain from config. The limiter is
// shared with the place searcher so the combined request rate stays within
// the public providers' usage policy.
func NewHTTPGeocoder(cfg config.GeoConfig, limiter *rate.Limiter) *HTTPGeocoder {
	httpClient := &http.Client{Timeout: constants.ExternalCallTimeout}

	photon := &photonProvider{
		baseURL:   cfg.PhotonBaseURL,
		userAgent: cfg.UserAgent,
		client:    httpClient,
		limiter:   limiter,
	}
	nominatim := &nominatimProvider{
		baseURL:   cfg.NominatimBaseURL,
		userAgent: cfg.UserAgent,
		client:    httpClient,
		limiter:   limiter,
	}

	return &HTTPGeocoder{
		providers: []geocodeProvider{photon, nominatim},
		reverse:   nominatim,
		limiter:   limiter,
		cache:     lru.NewLRU[string, entity.GeoPoint](1024, nil, constants.GeocodeCacheTTL),
	}
}

// Geocode tries each provider in order, returning the first hit
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (*entity.GeoPoint, error) {
	if address == "" {
		return nil, nil
	}

	if point, ok := g.cache.Get(address); ok {
		return &point, nil
	}

	var lastErr error
	for _, p := range g.providers {
		point, err := p.geocode(ctx, address)
		if err != nil {
			logger.Warn("Geocoder:Geocode:ProviderError", "provider", p.name(), "error", err, "address", address)
			lastErr = err
			continue
		}
		if point != nil {
			g.cache.Add(address, *point)
			return point, nil
		}
	}

	return nil, lastErr
}

// ReverseGeocode resolves coordinates to a display address ("" on miss)
func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return g.reverse.reverseGeocode(ctx, lat, lng)
}

// ===================== Photon =====================

type photonProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func (p *photonProvider) name() string { return "photon" }

func (p *photonProvider) geocode(ctx context.Context, address string) (*entity.GeoPoint, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api?q=%s&limit=1&lang=default", p.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photon returned status %d", resp.StatusCode)
	}

	var result struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"` // [lng, lat]
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if len(result.Features) == 0 || len(result.Features[0].Geometry.Coordinates) < 2 {
		return nil, nil
	}

	coords := result.Features[0].Geometry.Coordinates
	return &entity.GeoPoint{Lat: coords[1], Lng: coords[0]}, nil
}

// ===================== Nominatim =====================

type nominatimProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func (p *nominatimProvider) name() string { return "nominatim" }

func (p *nominatimProvider) geocode(ctx context.Context, address string) (*entity.GeoPoint, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1&accept-language=vi",
		p.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &entity.GeoPoint{Lat: lat, Lng: lng}, nil
}

func (p *nominatimProvider) reverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json&accept-language=vi",
		p.baseURL, lat, lng)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim reverse returned status %d", resp.StatusCode)
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.DisplayName, nil
}
