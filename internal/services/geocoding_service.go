package services

import (
	"context"
	"log"
	"net/url"
	"strings"

	"weather-api/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const geocodingSearchPath = "/v1/search"

// Upstream é o que os serviços precisam do cliente HTTP do Open-Meteo
type Upstream interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, out any) (int, error)
}

// GeocodingService resolve nomes de cidade em coordenadas
type GeocodingService struct {
	upstream Upstream
	endpoint string
	tracer   trace.Tracer
}

// NewGeocodingService cria uma nova instância do serviço
func NewGeocodingService(upstream Upstream, baseURL string) *GeocodingService {
	return &GeocodingService{
		upstream: upstream,
		endpoint: strings.TrimRight(baseURL, "/") + geocodingSearchPath,
		tracer:   otel.GetTracerProvider().Tracer("weather-api-geocoding"),
	}
}

// Search busca a cidade e devolve o primeiro resultado.
// Qualquer falha é registrada e tratada como "não encontrada".
func (s *GeocodingService) Search(ctx context.Context, city string) (models.Location, bool) {
	ctx, span := s.tracer.Start(ctx, "geocode-city")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	if strings.TrimSpace(city) == "" {
		return models.Location{}, false
	}

	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var geoResp models.GeocodingResponse
	if _, err := s.upstream.GetJSON(ctx, s.endpoint, params, &geoResp); err != nil {
		log.Printf("Erro ao consultar geocoding para %q: %v", city, err)
		span.RecordError(err)
		return models.Location{}, false
	}

	if len(geoResp.Results) == 0 {
		log.Printf("Cidade não encontrada: %s", city)
		return models.Location{}, false
	}

	result := geoResp.Results[0]
	if result.Latitude == nil || result.Longitude == nil {
		log.Printf("Resultado de geocoding sem coordenadas para %q", city)
		return models.Location{}, false
	}
	if result.Name == "" {
		log.Printf("Resultado de geocoding sem nome para %q", city)
		return models.Location{}, false
	}

	location := models.Location{
		Latitude:  *result.Latitude,
		Longitude: *result.Longitude,
		Name:      result.Name,
		Country:   result.Country,
	}

	log.Printf("Cidade encontrada: %s", location.DisplayName())
	span.SetAttributes(
		attribute.String("location", location.DisplayName()),
		attribute.Float64("latitude", location.Latitude),
		attribute.Float64("longitude", location.Longitude),
	)
	return location, true
}
