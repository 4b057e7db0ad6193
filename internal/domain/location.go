package domain

import "context"

// Location is a point of interest from the static locations dataset.
// Field names follow the published JSON asset.
type Location struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Categoria     string `json:"categoria"`
	Resumo        string `json:"resumo"`
	Descricao     string `json:"descricao"`
	Imagem        string `json:"imagem"`
	Endereco      string `json:"endereco"`
	GoogleMapsURL string `json:"googleMapsUrl"`
}

// LocationFetcher loads the points-of-interest dataset. Implementations are
// expected to fetch once and serve from memory afterwards.
type LocationFetcher interface {
	Fetch(ctx context.Context) ([]Location, error)
}
