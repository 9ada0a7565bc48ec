package models

import (
	"encoding/json"
	"fmt"
)

// Location representa um ponto resolvido, informado diretamente ou via geocoding
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
	Country   string
}

// DisplayName combina nome e país no rótulo devolvido ao cliente
func (l Location) DisplayName() string {
	if l.Country == "" {
		return l.Name
	}
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

// LocationQuery é a entrada de /api/weather: por coordenadas ou por nome de cidade
type LocationQuery struct {
	City      string
	Latitude  float64
	Longitude float64
}

// ByName indica se a consulta deve passar pelo geocoding
func (q LocationQuery) ByName() bool {
	return q.City != ""
}

// WeatherCode é a descrição e o ícone de um código WMO
type WeatherCode struct {
	Description string
	Icon        string
}

// CurrentConditions são as condições atuais já traduzidas
type CurrentConditions struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	WeatherCode *int     `json:"weather_code"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

// DailyForecast é um dia da previsão
type DailyForecast struct {
	Date           string   `json:"date"`
	WeatherCode    *int     `json:"weather_code"`
	Description    string   `json:"description"`
	Icon           string   `json:"icon"`
	TemperatureMax *float64 `json:"temperature_max"`
	TemperatureMin *float64 `json:"temperature_min"`
	WindSpeed      *float64 `json:"wind_speed"`
}

// WeatherResponse representa a resposta de /api/weather
type WeatherResponse struct {
	Location string            `json:"location"`
	Current  CurrentConditions `json:"current"`
	Forecast []DailyForecast   `json:"forecast"`
}

// ErrorResponse é o corpo de qualquer resposta de erro
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse é o corpo de /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// GeocodingResponse representa a resposta da API de geocoding do Open-Meteo
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// GeocodingResult é um candidato devolvido pelo geocoding
type GeocodingResult struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Country   string   `json:"country"`
}

// ForecastResponse representa a resposta da API de previsão do Open-Meteo
type ForecastResponse struct {
	Current ForecastCurrent `json:"current"`
	Daily   ForecastDaily   `json:"daily"`
}

// ForecastCurrent é o bloco "current" da previsão
type ForecastCurrent struct {
	Temperature2m      *float64     `json:"temperature_2m"`
	RelativeHumidity2m *float64     `json:"relative_humidity_2m"`
	WindSpeed10m       *float64     `json:"wind_speed_10m"`
	WeatherCode        NullableCode `json:"weather_code"`
}

// NullableCode distingue o campo ausente do campo enviado como null
type NullableCode struct {
	Present bool
	Value   *int
}

// UnmarshalJSON só é chamado quando a chave existe, inclusive com null
func (c *NullableCode) UnmarshalJSON(b []byte) error {
	c.Present = true
	c.Value = nil
	if string(b) == "null" {
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	c.Value = &v
	return nil
}

// ForecastDaily é o bloco "daily", com arrays paralelos indexados por dia
type ForecastDaily struct {
	Time             []string   `json:"time"`
	WeatherCode      []*int     `json:"weather_code"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	WindSpeed10mMax  []*float64 `json:"wind_speed_10m_max"`
}
