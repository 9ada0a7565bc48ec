package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-api/internal/client"
	"weather-api/internal/config"
	"weather-api/internal/handlers"
	"weather-api/internal/services"
)

func main() {
	// Carregar configuração (.env opcional + ambiente)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	// Inicializar o tracer
	cleanupFunc, err := handlers.InitTracer(cfg)
	if err != nil {
		log.Fatalf("Erro ao inicializar tracer: %v", err)
	}
	defer cleanupFunc()

	// Inicializar cliente e serviços
	openMeteo := client.NewOpenMeteoClient(client.Options{
		Timeout:   cfg.UpstreamTimeout,
		RateLimit: cfg.UpstreamRateLimit,
		Burst:     cfg.UpstreamBurst,
	})
	geocodingService := services.NewGeocodingService(openMeteo, cfg.GeocodingURL)
	weatherService := services.NewWeatherService(openMeteo, cfg.ForecastURL)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(geocodingService, weatherService, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Serviço %s iniciado em %s", cfg.ServiceName, cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro no servidor HTTP: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Encerrando servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Erro ao encerrar servidor: %v", err)
	}
}
