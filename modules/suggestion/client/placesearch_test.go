package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"group-planner/modules/suggestion/entity"
)

func TestNominatimSearcherParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("bounded"))
		w.Write([]byte(`[
			{"place_id":101,"name":"Cà Phê Giảng","display_name":"Cà Phê Giảng, Hoàn Kiếm, Hà Nội","lat":"21.0333","lon":"105.8500"},
			{"place_id":102,"name":"","display_name":"Quán Không Tên, Hà Nội","lat":"21.0300","lon":"105.8520"},
			{"place_id":103,"name":"Hỏng Tọa Độ","display_name":"x","lat":"abc","lon":"105.85"}
		]`))
	}))
	defer srv.Close()

	s := NewNominatimSearcher(geoConfig("", srv.URL), rate.NewLimiter(rate.Inf, 1))

	candidates, err := s.Search(context.Background(), "quán cà phê hà nội", entity.GeoPoint{Lat: 21.0285, Lng: 105.8542}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2, "rows with unparseable coordinates are dropped")

	assert.Equal(t, "101", candidates[0].PlaceID)
	assert.Equal(t, "Cà Phê Giảng", candidates[0].Name)
	assert.InDelta(t, 21.0333, candidates[0].Lat, 0.0001)

	// display name substitutes for a missing short name
	assert.Equal(t, "Quán Không Tên, Hà Nội", candidates[1].Name)
}

func TestNominatimSearcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewNominatimSearcher(geoConfig("", srv.URL), rate.NewLimiter(rate.Inf, 1))

	_, err := s.Search(context.Background(), "cafe", entity.GeoPoint{}, 10)
	assert.Error(t, err)
}
