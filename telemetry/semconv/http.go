package semconv

import (
	"go.opentelemetry.io/otel/attribute"
)

// HTTP define las convenciones semánticas para atributos OpenTelemetry
// relacionados con el boundary HTTP del bridge.
var HTTP struct {
	// Method identifica el método HTTP de la petición (GET, POST, etc.).
	Method attribute.Key

	// Path representa la ruta de la URL sin parámetros de consulta.
	Path attribute.Key

	// ClientIP registra la dirección IP del cliente que realizó la petición.
	ClientIP attribute.Key

	// StatusCode almacena el código de estado HTTP de la respuesta.
	StatusCode attribute.Key

	// DurationMs registra la duración de la petición en milisegundos.
	DurationMs attribute.Key

	// Error contiene información detallada si ocurrió un error.
	Error attribute.Key
}

func init() {
	HTTP.Method = attribute.Key("http.method")
	HTTP.Path = attribute.Key("http.path")
	HTTP.ClientIP = attribute.Key("http.client_ip")
	HTTP.StatusCode = attribute.Key("http.status_code")
	HTTP.DurationMs = attribute.Key("http.duration_ms")
	HTTP.Error = attribute.Key("http.error")
}
