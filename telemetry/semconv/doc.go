// Package semconv define convenciones semánticas para atributos OpenTelemetry
// usados en la telemetría de Bridge.
//
// Cada dominio (HTTP, pipeline de relay) tiene su conjunto de atributos
// predefinidos para instrumentación consistente y correlación entre logs,
// métricas y trazas.
//
// Uso básico:
//
//	attrs := []attribute.KeyValue{
//	    semconv.Bridge.Instrument.String("NQ MAR24"),
//	    semconv.Bridge.Symbol.String("USTECH"),
//	}
package semconv
