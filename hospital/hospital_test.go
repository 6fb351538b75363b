package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geocodeOngole = `{"features":[{"geometry":{"coordinates":[80.05,15.5]}}]}`

func fakeGeoapify(t *testing.T, geocode, places string, placesStatus int) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Clone(context.Background()))
		switch r.URL.Path {
		case "/v1/geocode/search":
			_, _ = w.Write([]byte(geocode))
		case "/v2/places":
			w.WriteHeader(placesStatus)
			_, _ = w.Write([]byte(places))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestFindNormalizesHospitals(t *testing.T) {
	places := `{"features":[
		{"properties":{"name":"City Hospital","formatted":"1 Main Rd","lat":15.51,"lon":80.04}},
		{"properties":{"lat":15.52,"lon":80.06}}
	]}`
	srv, seen := fakeGeoapify(t, geocodeOngole, places, http.StatusOK)
	c := NewGeoapifyClient(Config{APIKey: "secret", BaseURL: srv.URL})

	res := c.Find(context.Background(), "Ongole")

	require.NoError(t, res.Err)
	require.Len(t, res.Hospitals, 2)
	assert.Equal(t, "City Hospital", res.Hospitals[0].Name)
	assert.Equal(t, "1 Main Rd", res.Hospitals[0].Address)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=15.51,80.04", res.Hospitals[0].MapLink)
	assert.Equal(t, "Unnamed", res.Hospitals[1].Name)
	assert.Equal(t, "Address not available", res.Hospitals[1].Address)
	require.NotNil(t, res.Hospitals[1].Lat)
	assert.Equal(t, 15.52, *res.Hospitals[1].Lat)

	require.Len(t, *seen, 2)
	geo := (*seen)[0].URL.Query()
	assert.Equal(t, "Ongole", geo.Get("text"))
	assert.Equal(t, "secret", geo.Get("apiKey"))
	pl := (*seen)[1].URL.Query()
	assert.Equal(t, "healthcare.hospital", pl.Get("categories"))
	assert.Equal(t, "proximity:80.05,15.5", pl.Get("bias"))
	assert.Equal(t, "5", pl.Get("limit"))
}

func TestFindMissingCredentials(t *testing.T) {
	c := NewGeoapifyClient(Config{BaseURL: "http://127.0.0.1:1"})

	res := c.Find(context.Background(), "Ongole")

	assert.True(t, errors.Is(res.Err, ErrMissingCredentials))
	assert.Empty(t, res.Hospitals)
	assert.Equal(t, []Hospital{}, res.Suggestions())
}

func TestFindNoGeocodeResults(t *testing.T) {
	srv, seen := fakeGeoapify(t, `{"features":[]}`, `{}`, http.StatusOK)
	c := NewGeoapifyClient(Config{APIKey: "k", BaseURL: srv.URL})

	res := c.Find(context.Background(), "Nowhere")

	assert.True(t, errors.Is(res.Err, ErrNoResults))
	assert.Empty(t, res.Suggestions())
	assert.Len(t, *seen, 1)
}

func TestFindPlacesFailureYieldsMarker(t *testing.T) {
	srv, _ := fakeGeoapify(t, geocodeOngole, `boom`, http.StatusBadGateway)
	c := NewGeoapifyClient(Config{APIKey: "k", BaseURL: srv.URL})

	res := c.Find(context.Background(), "Ongole")

	assert.True(t, errors.Is(res.Err, ErrUnavailable))
	suggestions := res.Suggestions()
	require.Len(t, suggestions, 1)
	assert.Equal(t, UnavailableMessage, suggestions[0].Error)

	body, err := json.Marshal(suggestions)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"error":"Unable to fetch hospitals at this time."}]`, string(body))
}

func TestFindMalformedGeocode(t *testing.T) {
	srv, _ := fakeGeoapify(t, `{"features":`, `{}`, http.StatusOK)
	c := NewGeoapifyClient(Config{APIKey: "k", BaseURL: srv.URL})

	res := c.Find(context.Background(), "Ongole")

	assert.True(t, errors.Is(res.Err, ErrUnavailable))
}

func TestFindUnreachableRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	c := NewGeoapifyClient(Config{APIKey: "very-secret-key", BaseURL: base})

	res := c.Find(context.Background(), "Ongole")

	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrUnavailable))
	assert.NotContains(t, res.Err.Error(), "very-secret-key")
}

func TestMapLinkMissingCoordinates(t *testing.T) {
	lat := 1.5
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=1.5,None", MapLink(&lat, nil))
}
