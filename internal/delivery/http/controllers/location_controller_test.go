package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/domain"
)

type fakeLocationFetcher struct {
	locations []domain.Location
	err       error
}

func (f *fakeLocationFetcher) Fetch(ctx context.Context) ([]domain.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.locations, nil
}

func serraLocations() []domain.Location {
	return []domain.Location{
		{ID: "loc-1", Nome: "Cascata do Caracol", Categoria: "Natureza"},
		{ID: "loc-2", Nome: "Mirante da Serra", Categoria: "Natureza"},
		{ID: "loc-3", Nome: "Museu do Trem", Categoria: "Cultura"},
	}
}

func listLocations(fetcher domain.LocationFetcher, target string) *httptest.ResponseRecorder {
	ctrl := NewLocationController(testLogger(), fetcher)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	ctrl.ListLocations(rr, req)
	return rr
}

func decodeLocations(t *testing.T, rr *httptest.ResponseRecorder) []domain.Location {
	t.Helper()
	var envelope struct {
		Data []domain.Location `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope.Data
}

func TestLocationController_ListLocations(t *testing.T) {
	rr := listLocations(&fakeLocationFetcher{locations: serraLocations()}, "/locations")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeLocations(t, rr), 3)
}

func TestLocationController_Filters(t *testing.T) {
	fetcher := &fakeLocationFetcher{locations: serraLocations()}

	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{"search is a case-insensitive substring", "/locations?search=SERRA", []string{"loc-2"}},
		{"categoria matches exactly", "/locations?categoria=Natureza", []string{"loc-1", "loc-2"}},
		{"categoria is case-sensitive", "/locations?categoria=natureza", []string{}},
		{"search and categoria combine", "/locations?search=cascata&categoria=Natureza", []string{"loc-1"}},
		{"no match yields empty list, not null", "/locations?search=praia", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := listLocations(fetcher, tt.target)
			require.Equal(t, http.StatusOK, rr.Code)

			got := decodeLocations(t, rr)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for _, loc := range got {
				ids = append(ids, loc.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestLocationController_DatasetUnavailable(t *testing.T) {
	rr := listLocations(&fakeLocationFetcher{err: assert.AnError}, "/locations")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	res := decodeEnvelope(t, rr)
	require.NotNil(t, res.Error)
	assert.Equal(t, "locations dataset unavailable", res.Error.Message)
}
