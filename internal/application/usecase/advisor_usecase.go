package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ports"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// AdvisorUseCase arma el contexto operativo (stock bajo, órdenes pendientes,
// clima) y consulta al asesor para obtener recomendaciones.
type AdvisorUseCase struct {
	advisor   ports.AdvisorService
	weather   ports.WeatherProvider
	itemRepo  repository.StockItemRepository
	orderRepo repository.OrderRepository
}

// NewAdvisorUseCase construye el caso de uso. weather puede ser nil.
func NewAdvisorUseCase(advisor ports.AdvisorService, weather ports.WeatherProvider, itemRepo repository.StockItemRepository, orderRepo repository.OrderRepository) *AdvisorUseCase {
	return &AdvisorUseCase{advisor: advisor, weather: weather, itemRepo: itemRepo, orderRepo: orderRepo}
}

// Advise responde la pregunta del operador con el estado actual como contexto.
func (uc *AdvisorUseCase) Advise(ctx context.Context, in dto.AdviceRequest) (*dto.AdviceResponse, error) {
	if strings.TrimSpace(in.Question) == "" {
		return nil, domain.ErrInvalidInput
	}

	prompt, err := uc.buildPrompt(ctx, in.Question)
	if err != nil {
		return nil, err
	}

	advice, model, err := uc.advisor.Advise(ctx, prompt)
	if err != nil {
		// el asesor es un extra: nunca tumba la petición
		log.Error().Err(err).Msg("asesor no disponible, usando respuesta de contingencia")
		return &dto.AdviceResponse{
			Advice: fallbackAdvice,
			Source: "fallback",
		}, nil
	}
	return &dto.AdviceResponse{Advice: advice, Model: model, Source: "ai"}, nil
}

// Weather expone el clima actual para el panel.
func (uc *AdvisorUseCase) Weather(ctx context.Context) (*dto.WeatherDTO, error) {
	if uc.weather == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.weather.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.WeatherDTO{Condition: snap.Condition, Temperature: snap.Temperature}, nil
}

const fallbackAdvice = "Revisa los artículos en estado LOW y prioriza sus órdenes de reposición. " +
	"Confirma las recepciones pendientes antes del cierre del día para que el inventario concilie."

func (uc *AdvisorUseCase) buildPrompt(ctx context.Context, question string) (string, error) {
	var b strings.Builder
	b.WriteString("Eres el asesor de operaciones de una cadena de sucursales minoristas. ")
	b.WriteString("Responde en español, breve y accionable.\n\n")

	low, err := uc.itemRepo.CountByStatus(entity.StockStatusLow)
	if err != nil {
		return "", err
	}
	over, err := uc.itemRepo.CountByStatus(entity.StockStatusOver)
	if err != nil {
		return "", err
	}
	pending, err := uc.orderRepo.CountByStatus(entity.OrderPending)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Estado actual (%s):\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "- Artículos con stock bajo: %d\n", low)
	fmt.Fprintf(&b, "- Artículos con sobre-stock: %d\n", over)
	fmt.Fprintf(&b, "- Órdenes pendientes de aprobación: %d\n", pending)

	if uc.weather != nil {
		if snap, err := uc.weather.Current(ctx); err == nil {
			fmt.Fprintf(&b, "- Clima: %s, %.1f°C, viento %.1f km/h\n", snap.Condition, snap.Temperature, snap.WindSpeed)
		}
	}

	fmt.Fprintf(&b, "\nPregunta del operador: %s\n", question)
	return b.String(), nil
}
