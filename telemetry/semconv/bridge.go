package semconv

import (
	"go.opentelemetry.io/otel/attribute"
)

// Bridge define las convenciones semánticas para el pipeline de relay.
var Bridge struct {
	// Instrument es el identificador de instrumento tal como llegó del origen.
	Instrument attribute.Key

	// Symbol es el símbolo MT5 ya mapeado.
	Symbol attribute.Key

	// Action es la dirección del trade origen (Buy/Sell).
	Action attribute.Key

	// OrderType es la dirección invertida de la orden hedge.
	OrderType attribute.Key

	// Account es la cuenta origen del trade.
	Account attribute.Key

	// Quantity es la cantidad de contratos del trade origen.
	Quantity attribute.Key

	// QueueSize es el número de órdenes pendientes de pickup.
	QueueSize attribute.Key

	// QueueMode es la semántica de entrega activa (fifo/latest).
	QueueMode attribute.Key

	// ErrorCode es el código de error de dominio (MISSING_FIELDS, etc.).
	ErrorCode attribute.Key

	// ResultStatus es el status reportado por el EA MT5.
	ResultStatus attribute.Key

	// Ticket es el ticket MT5 reportado en el resultado de ejecución.
	Ticket attribute.Key
}

func init() {
	Bridge.Instrument = attribute.Key("bridge.instrument")
	Bridge.Symbol = attribute.Key("bridge.symbol")
	Bridge.Action = attribute.Key("bridge.action")
	Bridge.OrderType = attribute.Key("bridge.order_type")
	Bridge.Account = attribute.Key("bridge.account")
	Bridge.Quantity = attribute.Key("bridge.quantity")
	Bridge.QueueSize = attribute.Key("bridge.queue_size")
	Bridge.QueueMode = attribute.Key("bridge.queue_mode")
	Bridge.ErrorCode = attribute.Key("bridge.error_code")
	Bridge.ResultStatus = attribute.Key("bridge.result_status")
	Bridge.Ticket = attribute.Key("bridge.ticket")
}
