package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// OpenMeteoClient é o caminho único de saída para as APIs do Open-Meteo
type OpenMeteoClient struct {
	client  *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
}

// Options ajusta o cliente; valores zero mantêm o comportamento padrão do http.Client
type Options struct {
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// NewOpenMeteoClient cria uma nova instância do cliente
func NewOpenMeteoClient(opts Options) *OpenMeteoClient {
	return NewOpenMeteoClientWithHTTPClient(&http.Client{Timeout: opts.Timeout}, opts)
}

// NewOpenMeteoClientWithHTTPClient cria o cliente sobre um http.Client já configurado
func NewOpenMeteoClientWithHTTPClient(httpClient *http.Client, opts Options) *OpenMeteoClient {
	c := &OpenMeteoClient{
		client: httpClient,
		tracer: otel.GetTracerProvider().Tracer("weather-api-client"),
	}

	// Limite de saída opcional; RateLimit <= 0 significa sem limite
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return c
}

// GetJSON executa um GET em endpoint com params e decodifica o corpo em out.
// Retorna o status HTTP recebido (0 se a requisição não chegou a ser feita).
func (c *OpenMeteoClient) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) (int, error) {
	ctx, span := c.tracer.Start(ctx, "call-open-meteo", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	reqURL, err := buildURL(endpoint, params)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("error building request URL: %w", err)
	}
	span.SetAttributes(attribute.String("http.url", reqURL))

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return 0, &NetworkError{Operation: "rate limit wait", Err: err}
		}
	}

	// Criar a requisição HTTP
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Injetar o contexto de trace no cabeçalho da requisição
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	// Enviar a requisição
	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return 0, &NetworkError{Operation: "request", Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	// Ler o corpo da resposta
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return resp.StatusCode, &NetworkError{Operation: "read body", Err: err}
	}

	// Se o status não for de sucesso, retornar erro
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		span.RecordError(apiErr)
		return resp.StatusCode, apiErr
	}

	// Decodificar a resposta JSON
	if err := json.Unmarshal(body, out); err != nil {
		span.RecordError(err)
		return resp.StatusCode, fmt.Errorf("error unmarshaling response: %w", err)
	}

	return resp.StatusCode, nil
}

func buildURL(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q", endpoint)
	}

	query := u.Query()
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}
