// Package weather implementa el puerto de clima sobre la API pública de
// Open-Meteo (sin API key).
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/forkast/branch-ops/internal/application/ports"
)

var _ ports.WeatherProvider = (*OpenMeteoProvider)(nil)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider consulta el clima actual para coordenadas fijas.
// Cachea la última respuesta unos minutos: el clima no cambia más rápido y
// la API agradece no ser golpeada en cada render del panel.
type OpenMeteoProvider struct {
	latitude   float64
	longitude  float64
	httpClient *http.Client

	cached   *ports.WeatherSnapshot
	cacheTTL time.Duration
}

// NewOpenMeteoProvider construye el proveedor para las coordenadas dadas.
func NewOpenMeteoProvider(latitude, longitude float64) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		latitude:   latitude,
		longitude:  longitude,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   10 * time.Minute,
	}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current devuelve el clima actual, de caché si sigue fresco.
func (p *OpenMeteoProvider) Current(ctx context.Context) (*ports.WeatherSnapshot, error) {
	if p.cached != nil && time.Since(p.cached.FetchedAt) < p.cacheTTL {
		return p.cached, nil
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", p.latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", p.longitude))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openMeteoURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: crear request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: request falló: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("open-meteo: leer respuesta: %w", err)
	}
	var parsed openMeteoResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("open-meteo: respuesta inválida: %w", err)
	}

	snap := &ports.WeatherSnapshot{
		Temperature: parsed.CurrentWeather.Temperature,
		WindSpeed:   parsed.CurrentWeather.WindSpeed,
		Condition:   ConditionFromCode(parsed.CurrentWeather.WeatherCode),
		FetchedAt:   time.Now(),
	}
	p.cached = snap
	return snap, nil
}

// ConditionFromCode traduce el código WMO de Open-Meteo a una condición
// legible.
func ConditionFromCode(code int) string {
	switch {
	case code == 0:
		return "despejado"
	case code >= 1 && code <= 3:
		return "parcialmente nublado"
	case code == 45 || code == 48:
		return "niebla"
	case code >= 51 && code <= 57:
		return "llovizna"
	case code >= 61 && code <= 67:
		return "lluvia"
	case code >= 71 && code <= 77:
		return "nieve"
	case code >= 80 && code <= 82:
		return "chubascos"
	case code >= 95:
		return "tormenta"
	default:
		return "desconocido"
	}
}
