package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"weather-api/internal/models"
	"weather-api/internal/services"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "weather-api"

	msgCityNotFound        = "City not found"
	msgFetchFailed         = "Failed to fetch weather data"
	msgInternalServerError = "Internal server error"
	msgMethodNotAllowed    = "Method Not Allowed"
	msgNotFound            = "Not Found"
)

// Geocoder resolve um nome de cidade; false significa "não encontrada"
type Geocoder interface {
	Search(ctx context.Context, city string) (models.Location, bool)
}

// Forecaster busca a previsão para coordenadas
type Forecaster interface {
	GetWeather(ctx context.Context, lat, lon float64, label string) (*models.WeatherResponse, error)
}

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer("weather-api-handlers")
}

// NewRouter monta as rotas da API com CORS e recuperação de panic
func NewRouter(geocoder Geocoder, forecaster Forecaster, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/weather", HandleWeatherRequest(geocoder, forecaster))
	mux.HandleFunc("/api/health", HandleHealthCheck)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})

	return Recover(CORS(allowedOrigins, mux))
}

// HandleHealthCheck verifica se o serviço está ativo; não faz chamadas externas
func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
	})
}

// HandleWeatherRequest resolve a localização (cidade ou coordenadas) e devolve a previsão
func HandleWeatherRequest(geocoder Geocoder, forecaster Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extrair o contexto de propagação do cabeçalho da requisição
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer().Start(ctx, "handle-weather-request", trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		// Aceita apenas método GET
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
			return
		}

		query, err := parseLocationQuery(r)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		lat, lon, label := query.Latitude, query.Longitude, ""

		// Buscar coordenadas pela cidade; lat/lon da query são descartados
		if query.ByName() {
			span.SetAttributes(attribute.String("city", query.City))
			location, found := geocoder.Search(ctx, query.City)
			if !found {
				writeError(w, http.StatusNotFound, msgCityNotFound)
				return
			}
			lat, lon, label = location.Latitude, location.Longitude, location.DisplayName()
		}

		// Buscar previsão
		response, err := forecaster.GetWeather(ctx, lat, lon, label)
		if err != nil {
			span.RecordError(err)
			log.Printf("Erro ao obter previsão: %v", err)
			status, detail := errorResponse(err)
			writeError(w, status, detail)
			return
		}

		span.SetAttributes(attribute.String("location", response.Location))
		writeJSON(w, http.StatusOK, response)
	}
}

// errorResponse mapeia erros do serviço para status e mensagem pública
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrCityNotFound):
		return http.StatusNotFound, msgCityNotFound
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return http.StatusInternalServerError, msgFetchFailed
	default:
		return http.StatusInternalServerError, msgInternalServerError
	}
}

// parseLocationQuery lê city ou lat/lon; com city as coordenadas são opcionais
func parseLocationQuery(r *http.Request) (models.LocationQuery, error) {
	values := r.URL.Query()
	query := models.LocationQuery{City: strings.TrimSpace(values.Get("city"))}

	lat, latErr := parseCoordinate(values.Get("lat"), "lat", 90)
	lon, lonErr := parseCoordinate(values.Get("lon"), "lon", 180)

	if query.ByName() {
		return query, nil
	}
	if latErr != nil {
		return models.LocationQuery{}, latErr
	}
	if lonErr != nil {
		return models.LocationQuery{}, lonErr
	}

	query.Latitude, query.Longitude = lat, lon
	return query, nil
}

func parseCoordinate(raw, name string, limit float64) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("query parameter %s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("query parameter %s must be a number", name)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("query parameter %s must be between %g and %g", name, -limit, limit)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Erro ao escrever resposta: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
