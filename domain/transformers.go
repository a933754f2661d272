package domain

import (
	"github.com/xKoRx/bridge/utils"
)

// JSONToTradeEvent parsea y valida un payload JSON de /log_trade.
//
// Retorna ErrMalformedInput si el body no es JSON válido; delega el resto
// de chequeos en ValidateTradeEvent.
func JSONToTradeEvent(data []byte) (*TradeEvent, error) {
	raw, err := utils.JSONToMap(data)
	if err != nil {
		return nil, WrapError(ErrMalformedInput, "Invalid JSON", err)
	}
	return ValidateTradeEvent(raw)
}

// TradeEventToSinkOrder transforma un TradeEvent validado en la orden hedge.
//
// Total para eventos que pasaron validación: nunca falla. Aplica el mapper
// de símbolos e invierte la dirección (la orden MT5 cubre la exposición del
// trade origen, no la replica).
func TradeEventToSinkOrder(event *TradeEvent, mapper *Mapper) SinkOrder {
	return SinkOrder{
		Time:    event.Time,
		Symbol:  mapper.Map(event.Instrument),
		Type:    event.Action.Complement(),
		Volume:  event.Quantity,
		Price:   event.Price,
		Comment: HedgeComment(event.Account),
		IsClose: event.IsExit,
	}
}

// JSONToTradeResult parsea un resultado de ejecución del EA MT5.
//
// Parse best-effort: cualquier JSON parseable se acepta y los campos
// conocidos se extraen si están presentes. Solo JSON no parseable produce
// error.
func JSONToTradeResult(data []byte) (*TradeResult, error) {
	value, err := utils.JSONToValue(data)
	if err != nil {
		return nil, WrapError(ErrMalformedInput, "Invalid JSON", err)
	}

	raw, ok := value.(map[string]interface{})
	if !ok {
		// Arrays y escalares: el EA manda shapes variables según build de
		// terminal. Se conservan crudos bajo "payload", sin campos tipados.
		return &TradeResult{Raw: map[string]interface{}{"payload": value}}, nil
	}

	return &TradeResult{
		Status:       utils.ExtractString(raw, "status"),
		Ticket:       utils.ExtractInt64(raw, "ticket"),
		Symbol:       utils.ExtractString(raw, "symbol"),
		Volume:       utils.ExtractFloat64(raw, "volume"),
		Price:        utils.ExtractFloat64(raw, "price"),
		ErrorMessage: utils.ExtractString(raw, "error_message"),
		Raw:          raw,
	}, nil
}
