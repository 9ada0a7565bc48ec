package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"weather-api/internal/client"
	"weather-api/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	forecastPath = "/v1/forecast"

	// ForecastDays é o número máximo de dias devolvidos na previsão
	ForecastDays = 5

	// DefaultLocationLabel é usado quando a consulta veio só com coordenadas
	DefaultLocationLabel = "Current Location"
)

var (
	currentFields = []string{"temperature_2m", "relative_humidity_2m", "wind_speed_10m", "weather_code"}
	dailyFields   = []string{"weather_code", "temperature_2m_max", "temperature_2m_min", "wind_speed_10m_max"}
)

// WeatherService busca a previsão e a converte no formato da API
type WeatherService struct {
	upstream Upstream
	endpoint string
	tracer   trace.Tracer
}

// NewWeatherService cria uma nova instância do serviço
func NewWeatherService(upstream Upstream, baseURL string) *WeatherService {
	return &WeatherService{
		upstream: upstream,
		endpoint: strings.TrimRight(baseURL, "/") + forecastPath,
		tracer:   otel.GetTracerProvider().Tracer("weather-api-forecast"),
	}
}

// GetWeather busca condições atuais e previsão de 5 dias para as coordenadas.
// label vazio vira DefaultLocationLabel.
func (s *WeatherService) GetWeather(ctx context.Context, lat, lon float64, label string) (*models.WeatherResponse, error) {
	ctx, span := s.tracer.Start(ctx, "fetch-forecast")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("latitude", lat),
		attribute.Float64("longitude", lon),
	)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", strings.Join(currentFields, ","))
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(ForecastDays))

	var forecastResp models.ForecastResponse
	if _, err := s.upstream.GetJSON(ctx, s.endpoint, params, &forecastResp); err != nil {
		log.Printf("Erro ao consultar previsão: %v", err)
		span.RecordError(err)

		var apiErr *client.APIError
		var netErr *client.NetworkError
		if errors.As(err, &apiErr) || errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	if label == "" {
		label = DefaultLocationLabel
	}

	response, err := BuildWeatherResponse(label, forecastResp)
	if err != nil {
		log.Printf("Resposta de previsão inválida: %v", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("forecast_days", len(response.Forecast)))
	return response, nil
}

// BuildWeatherResponse converte a resposta do Open-Meteo no formato da API
func BuildWeatherResponse(label string, data models.ForecastResponse) (*models.WeatherResponse, error) {
	// Ausente vale 0; null explícito vira Unknown com código null
	currentCode := data.Current.WeatherCode.Value
	if !data.Current.WeatherCode.Present {
		zero := 0
		currentCode = &zero
	}
	current := lookupOptionalCode(currentCode)

	forecast, err := buildDailyForecast(data.Daily)
	if err != nil {
		return nil, err
	}

	return &models.WeatherResponse{
		Location: label,
		Current: models.CurrentConditions{
			Temperature: data.Current.Temperature2m,
			Humidity:    data.Current.RelativeHumidity2m,
			WindSpeed:   data.Current.WindSpeed10m,
			WeatherCode: currentCode,
			Description: current.Description,
			Icon:        current.Icon,
		},
		Forecast: forecast,
	}, nil
}

func buildDailyForecast(daily models.ForecastDaily) ([]models.DailyForecast, error) {
	forecast := make([]models.DailyForecast, 0, ForecastDays)

	// Sem datas ou sem códigos não há previsão diária
	if len(daily.Time) == 0 || len(daily.WeatherCode) == 0 {
		return forecast, nil
	}

	days := min(ForecastDays, len(daily.Time))
	for _, field := range []struct {
		name string
		n    int
	}{
		{"weather_code", len(daily.WeatherCode)},
		{"temperature_2m_max", len(daily.Temperature2mMax)},
		{"temperature_2m_min", len(daily.Temperature2mMin)},
		{"wind_speed_10m_max", len(daily.WindSpeed10mMax)},
	} {
		if field.n < days {
			return nil, fmt.Errorf("daily %s has %d entries, want %d", field.name, field.n, days)
		}
	}

	for i := 0; i < days; i++ {
		wc := lookupOptionalCode(daily.WeatherCode[i])
		forecast = append(forecast, models.DailyForecast{
			Date:           daily.Time[i],
			WeatherCode:    daily.WeatherCode[i],
			Description:    wc.Description,
			Icon:           wc.Icon,
			TemperatureMax: daily.Temperature2mMax[i],
			TemperatureMin: daily.Temperature2mMin[i],
			WindSpeed:      daily.WindSpeed10mMax[i],
		})
	}

	return forecast, nil
}
