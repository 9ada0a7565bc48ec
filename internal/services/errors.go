package services

import "errors"

var (
	// ErrCityNotFound indica que o geocoding não resolveu a cidade
	ErrCityNotFound = errors.New("city not found")

	// ErrUpstreamUnavailable indica falha de transporte ou status não-200 na API de previsão
	ErrUpstreamUnavailable = errors.New("failed to fetch weather data")
)
