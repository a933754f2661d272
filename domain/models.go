package domain

import "fmt"

// TradeAction representa la dirección de un trade en la plataforma origen.
type TradeAction string

const (
	ActionBuy  TradeAction = "Buy"
	ActionSell TradeAction = "Sell"
)

// IsValid indica si la acción es una de las dos permitidas.
func (a TradeAction) IsValid() bool {
	return a == ActionBuy || a == ActionSell
}

// Complement retorna la dirección opuesta (Buy→Sell, Sell→Buy).
//
// La orden hedge siempre usa el complemento de la acción origen.
func (a TradeAction) Complement() TradeAction {
	if a == ActionBuy {
		return ActionSell
	}
	return ActionBuy
}

// String implementa fmt.Stringer.
func (a TradeAction) String() string {
	return string(a)
}

// TradeEvent representa un trade recibido desde la plataforma origen (NT8).
//
// Time es pass-through opaco: el origen envía timestamps con precisión de
// ticks que no sobreviven un parse a time.Time, así que no se interpreta.
type TradeEvent struct {
	Time       string      `json:"time" db:"time"`             // Timestamp origen (opaco)
	Instrument string      `json:"instrument" db:"instrument"` // Identificador NT (ej: "NQ MAR24", "NQ@E-MINI")
	Action     TradeAction `json:"action" db:"action"`         // Buy/Sell
	Quantity   float64     `json:"quantity" db:"quantity"`     // Contratos, > 0
	Price      float64     `json:"price" db:"price"`           // Precio de ejecución en origen
	Account    string      `json:"account" db:"account"`       // Cuenta origen
	IsExit     bool        `json:"is_exit" db:"is_exit"`       // true si cierra posición (opcional, default false)
}

// SinkOrder representa la orden hedge lista para que el EA de MT5 la recoja.
//
// Invariante: Type es siempre el complemento de la acción origen.
type SinkOrder struct {
	Time    string      `json:"time" db:"time"`       // Copiado del TradeEvent
	Symbol  string      `json:"symbol" db:"symbol"`   // Símbolo MT5 mapeado
	Type    TradeAction `json:"type" db:"order_type"` // Dirección invertida
	Volume  float64     `json:"volume" db:"volume"`   // = Quantity
	Price   float64     `json:"price" db:"price"`     // = Price
	Comment string      `json:"comment" db:"comment"` // "Hedge_" + Account
	IsClose bool        `json:"is_close" db:"is_close"`
}

// HedgeCommentPrefix prefijo del comment de órdenes hedge en MT5.
const HedgeCommentPrefix = "Hedge_"

// HedgeComment sintetiza el comment MT5 desde la cuenta origen.
func HedgeComment(account string) string {
	return fmt.Sprintf("%s%s", HedgeCommentPrefix, account)
}

// TradeResult representa el resultado de ejecución reportado por el EA MT5.
//
// El payload es best-effort: el EA manda campos variables según versión,
// así que todos son opcionales y Raw conserva el payload completo.
type TradeResult struct {
	Status       string                 `json:"status"`        // "filled" | "rejected" | libre
	Ticket       int64                  `json:"ticket"`        // Ticket MT5 (0 si ausente)
	Symbol       string                 `json:"symbol"`        // Símbolo ejecutado
	Volume       float64                `json:"volume"`        // Volumen ejecutado
	Price        float64                `json:"price"`         // Precio ejecutado
	ErrorMessage string                 `json:"error_message"` // Mensaje de error del broker
	Raw          map[string]interface{} `json:"-"`             // Payload completo tal cual llegó
}
