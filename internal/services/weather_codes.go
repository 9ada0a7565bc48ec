package services

import "weather-api/internal/models"

// unknownWeatherCode é devolvido para códigos fora da tabela
var unknownWeatherCode = models.WeatherCode{Description: "Unknown", Icon: "❓"}

// weatherCodes mapeia códigos WMO; somente leitura após a inicialização
var weatherCodes = map[int]models.WeatherCode{
	0:  {Description: "Clear sky", Icon: "☀️"},
	1:  {Description: "Mainly clear", Icon: "🌤️"},
	2:  {Description: "Partly cloudy", Icon: "⛅"},
	3:  {Description: "Overcast", Icon: "☁️"},
	45: {Description: "Foggy", Icon: "🌫️"},
	48: {Description: "Depositing rime fog", Icon: "🌫️"},
	51: {Description: "Light drizzle", Icon: "🌦️"},
	53: {Description: "Moderate drizzle", Icon: "🌦️"},
	55: {Description: "Dense drizzle", Icon: "🌦️"},
	61: {Description: "Slight rain", Icon: "🌧️"},
	63: {Description: "Moderate rain", Icon: "🌧️"},
	65: {Description: "Heavy rain", Icon: "🌧️"},
	71: {Description: "Slight snow", Icon: "🌨️"},
	73: {Description: "Moderate snow", Icon: "❄️"},
	75: {Description: "Heavy snow", Icon: "❄️"},
	80: {Description: "Slight rain showers", Icon: "🌦️"},
	81: {Description: "Moderate rain showers", Icon: "🌧️"},
	82: {Description: "Violent rain showers", Icon: "⛈️"},
	95: {Description: "Thunderstorm", Icon: "⛈️"},
	96: {Description: "Thunderstorm with hail", Icon: "⛈️"},
	99: {Description: "Thunderstorm with heavy hail", Icon: "⛈️"},
}

// LookupWeatherCode traduz um código WMO em descrição e ícone
func LookupWeatherCode(code int) models.WeatherCode {
	if wc, ok := weatherCodes[code]; ok {
		return wc
	}
	return unknownWeatherCode
}

// lookupOptionalCode trata código ausente (null no upstream) como desconhecido
func lookupOptionalCode(code *int) models.WeatherCode {
	if code == nil {
		return unknownWeatherCode
	}
	return LookupWeatherCode(*code)
}
