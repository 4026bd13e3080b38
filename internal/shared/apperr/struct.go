package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // mensaje mostrable al usuario
	Fields    map[string]string // errores por campo de formulario (opcional)
	Err       error             // error interno (para el log)
}
