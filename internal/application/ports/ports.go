// Package ports define los puertos de servicios externos que consume la capa
// de aplicación. Las implementaciones viven en internal/infrastructure.
package ports

import (
	"context"
	"time"
)

// AdvisorService genera recomendaciones operativas en lenguaje natural a
// partir de un resumen del estado del negocio.
type AdvisorService interface {
	// Advise devuelve el texto del consejo y el identificador del modelo que
	// lo produjo. Debe degradar a un consejo estático si el proveedor falla.
	Advise(ctx context.Context, prompt string) (advice string, model string, err error)
}

// WeatherSnapshot clima actual de la zona de operación.
type WeatherSnapshot struct {
	Temperature float64
	Condition   string
	WindSpeed   float64
	FetchedAt   time.Time
}

// WeatherProvider consulta el clima para enriquecer el contexto del asesor y
// la planificación de entregas.
type WeatherProvider interface {
	Current(ctx context.Context) (*WeatherSnapshot, error)
}

// StatsCache caché de corta vida para respuestas costosas del panel. Las
// implementaciones nunca deben propagar errores de caché como fallos del
// caso de uso.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}
