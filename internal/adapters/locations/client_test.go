package locations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `[
	{"id": "1", "nome": "Cascata do Salto", "categoria": "Natureza",
	 "resumo": "Queda de 40m", "descricao": "Acesso por trilha leve.",
	 "imagem": "https://cdn.example.com/salto.jpg",
	 "endereco": "Estrada do Salto, km 12",
	 "googleMapsUrl": "https://maps.google.com/?q=cascata"},
	{"id": "2", "nome": "Museu Municipal", "categoria": "Cultura",
	 "resumo": "", "descricao": "", "imagem": "", "endereco": "Centro",
	 "googleMapsUrl": ""}
]`

func TestHTTPFetcher_FetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(dataset))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), srv.URL)

	first, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Cascata do Salto", first[0].Nome)
	assert.Equal(t, "Natureza", first[0].Categoria)
	assert.Equal(t, "https://maps.google.com/?q=cascata", first[0].GoogleMapsURL)

	second, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, int32(1), hits.Load(), "dataset is fetched once")
}

func TestHTTPFetcher_RetriesAfterFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(dataset))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), srv.URL)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	// A failed load must not be sticky.
	got, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHTTPFetcher_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.Client(), srv.URL).Fetch(context.Background())
	assert.Error(t, err)
}
