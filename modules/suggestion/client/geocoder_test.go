package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"group-planner/core/config"
)

func geoConfig(photonURL, nominatimURL string) config.GeoConfig {
	return config.GeoConfig{
		PhotonBaseURL:    photonURL,
		NominatimBaseURL: nominatimURL,
		UserAgent:        "test-agent/1.0",
		RequestsPerSec:   1000,
	}
}

func TestGeocoderUsesPhotonFirst(t *testing.T) {
	photon := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[105.8542,21.0285]}}]}`))
	}))
	defer photon.Close()

	nominatimCalled := atomic.Bool{}
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nominatimCalled.Store(true)
		w.Write([]byte(`[]`))
	}))
	defer nominatim.Close()

	g := NewHTTPGeocoder(geoConfig(photon.URL, nominatim.URL), rate.NewLimiter(rate.Inf, 1))

	point, err := g.Geocode(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 21.0285, point.Lat, 0.0001)
	assert.InDelta(t, 105.8542, point.Lng, 0.0001)
	assert.False(t, nominatimCalled.Load(), "first provider success must not fall through")
}

func TestGeocoderFallsBackToNominatim(t *testing.T) {
	photon := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer photon.Close()

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"21.0285","lon":"105.8542"}]`))
	}))
	defer nominatim.Close()

	g := NewHTTPGeocoder(geoConfig(photon.URL, nominatim.URL), rate.NewLimiter(rate.Inf, 1))

	point, err := g.Geocode(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 21.0285, point.Lat, 0.0001)
}

func TestGeocoderMissIsNotAnError(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" {
			w.Write([]byte(`{"features":[]}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer empty.Close()

	g := NewHTTPGeocoder(geoConfig(empty.URL, empty.URL), rate.NewLimiter(rate.Inf, 1))

	point, err := g.Geocode(context.Background(), "nơi không tồn tại")
	require.NoError(t, err)
	assert.Nil(t, point)

	point, err = g.Geocode(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestGeocoderCachesResolvedPoints(t *testing.T) {
	calls := atomic.Int64{}
	photon := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[105.8542,21.0285]}}]}`))
	}))
	defer photon.Close()

	g := NewHTTPGeocoder(geoConfig(photon.URL, photon.URL), rate.NewLimiter(rate.Inf, 1))

	_, err := g.Geocode(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.NoError(t, err)
	_, err = g.Geocode(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
}

func TestReverseGeocode(t *testing.T) {
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"display_name":"Quận Hoàn Kiếm, Hà Nội, Việt Nam"}`))
	}))
	defer nominatim.Close()

	g := NewHTTPGeocoder(geoConfig(nominatim.URL, nominatim.URL), rate.NewLimiter(rate.Inf, 1))

	label, err := g.ReverseGeocode(context.Background(), 21.0285, 105.8542)
	require.NoError(t, err)
	assert.Equal(t, "Quận Hoàn Kiếm, Hà Nội, Việt Nam", label)
}
