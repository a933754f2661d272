package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError representa un error de validación.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implementa la interfaz error.
func (v *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", v.Field, v.Value, v.Message)
}

// NewValidationError crea un nuevo ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RequiredTradeFields campos obligatorios de un TradeEvent entrante.
//
// is_exit es opcional (default false).
var RequiredTradeFields = []string{"time", "instrument", "action", "quantity", "price", "account"}

// ValidateTradeEvent valida un payload JSON ya parseado y retorna el
// TradeEvent canónico.
//
// Chequeos en orden, con corte en el primero que falla:
//  1. Campos obligatorios presentes; el error enumera TODOS los ausentes,
//     no solo el primero.
//  2. action ∈ {Buy, Sell}.
//  3. quantity numérico (número JSON o string numérico) y > 0.
//
// price no tiene cota: el origen puede mandar precios no positivos en
// instrumentos de spread y se aceptan tal cual.
func ValidateTradeEvent(raw map[string]interface{}) (*TradeEvent, error) {
	missing := make([]string, 0)
	for _, field := range RequiredTradeFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, NewError(ErrMissingFields,
			fmt.Sprintf("Missing required fields: [%s]", strings.Join(missing, ", "))).
			WithDetail("missing_fields", missing)
	}

	action := TradeAction(asString(raw["action"]))
	if !action.IsValid() {
		return nil, NewError(ErrInvalidAction,
			fmt.Sprintf("Invalid action: %v. Must be one of [Buy Sell]", raw["action"]))
	}

	quantity, err := asFloat(raw["quantity"])
	if err != nil {
		return nil, WrapError(ErrInvalidQuantity,
			fmt.Sprintf("Invalid quantity: %v. Must be a number", raw["quantity"]), err)
	}
	if quantity <= 0 {
		return nil, NewError(ErrInvalidQuantity,
			fmt.Sprintf("Invalid quantity: %v. Must be greater than 0", raw["quantity"]))
	}

	// price: mismo parse laxo que quantity, sin cota
	price, err := asFloat(raw["price"])
	if err != nil {
		return nil, WrapError(ErrInvalidPrice,
			fmt.Sprintf("Invalid price: %v. Must be a number", raw["price"]), err)
	}

	return &TradeEvent{
		Time:       asString(raw["time"]),
		Instrument: asString(raw["instrument"]),
		Action:     action,
		Quantity:   quantity,
		Price:      price,
		Account:    asString(raw["account"]),
		IsExit:     asBool(raw["is_exit"]),
	}, nil
}

// asString convierte un valor JSON a string (formato laxo).
func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// asFloat convierte un valor JSON a float64 aceptando números y strings
// numéricos (el indicador NT manda quantity como string en versiones viejas).
func asFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// asBool convierte un valor JSON a bool, false si ausente o no booleano.
func asBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
