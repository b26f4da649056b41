package dto

// AdviceRequest body para POST /api/advisor/advice.
type AdviceRequest struct {
	Question string `json:"question"`
}

// AdviceResponse respuesta del asesor. Source indica "ai" o "fallback" cuando
// el modelo no estuvo disponible y se devolvió el texto de contingencia.
type AdviceResponse struct {
	Advice string `json:"advice"`
	Model  string `json:"model,omitempty"`
	Source string `json:"source"`
}

// WeatherDTO clima actual usado como contexto del asesor.
type WeatherDTO struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
}
