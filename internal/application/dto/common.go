package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkRequest IDs objetivo de una acción masiva de administración.
type BulkRequest struct {
	IDs []string `json:"ids"`
}

// BulkRowError fallo aislado de una fila dentro de una acción masiva.
type BulkRowError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult resultado agregado de una acción masiva: cada fila se procesa de
// forma aislada y el fallo de una no bloquea a las demás.
type BulkResult struct {
	Requested int            `json:"requested"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Errors    []BulkRowError `json:"errors,omitempty"`
}

// Add registra el resultado de una fila.
func (b *BulkResult) Add(id string, err error) {
	b.Requested++
	if err != nil {
		b.Failed++
		b.Errors = append(b.Errors, BulkRowError{ID: id, Error: err.Error()})
		return
	}
	b.Succeeded++
}
