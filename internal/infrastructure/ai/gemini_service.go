// Package ai implementa el puerto del asesor sobre la API REST de Google
// Gemini, con lista de modelos en orden de preferencia y reintentos ante
// rate limit.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa AdvisorService.
var _ ports.AdvisorService = (*GeminiService)(nil)

const (
	geminiURLTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	// reintentos ante 429 con backoff exponencial: 1s, 2s, 4s
	maxRetries = 3
	baseDelay  = time.Second
)

// GeminiService adaptador del asesor usando la API REST de Gemini.
// Usa net/http de la librería estándar; no requiere el SDK oficial.
// Recorre los modelos en orden: si uno devuelve error no recuperable (404 de
// modelo retirado, cuota agotada tras reintentos) prueba el siguiente.
type GeminiService struct {
	apiKey     string
	models     []string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. models en orden de preferencia;
// vacío usa la lista por defecto. Si apiKey está vacío las llamadas devuelven
// error descriptivo en lugar de panic.
func NewGeminiService(apiKey string, models []string) *GeminiService {
	if len(models) == 0 {
		models = []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"}
	}
	return &GeminiService{
		apiKey: apiKey,
		models: models,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Gemini generateContent ─────────────────

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Advise envía el prompt al primer modelo disponible de la lista y devuelve
// el texto generado junto al nombre del modelo que respondió.
func (s *GeminiService) Advise(ctx context.Context, prompt string) (string, string, error) {
	if s.apiKey == "" {
		return "", "", fmt.Errorf("gemini: GEMINI_API_KEY no configurada")
	}

	var lastErr error
	for _, model := range s.models {
		text, err := s.generateWithRetry(ctx, model, prompt)
		if err == nil {
			return text, model, nil
		}
		lastErr = err
		log.Warn().Str("model", model).Err(err).Msg("modelo no disponible, probando el siguiente")
	}
	return "", "", fmt.Errorf("gemini: ningún modelo disponible: %w", lastErr)
}

// generateWithRetry reintenta ante 429 con backoff exponencial; otros errores
// cortan de inmediato para pasar al siguiente modelo.
func (s *GeminiService) generateWithRetry(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		text, retryable, err := s.generate(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

func (s *GeminiService) generate(ctx context.Context, model, prompt string) (text string, retryable bool, err error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", false, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiURLTemplate, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("gemini: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("gemini: request falló: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false, fmt.Errorf("gemini: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("gemini: rate limit (429) en %s", model)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("gemini: status %d en %s: %s", resp.StatusCode, model, truncate(string(raw), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("gemini: respuesta inválida: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("gemini: error de API %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("gemini: respuesta sin candidatos")
	}

	var b strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", false, fmt.Errorf("gemini: respuesta vacía")
	}
	return out, false, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
