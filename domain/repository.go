package domain

import "context"

// AuditRepository persiste el journal de auditoría del bridge.
//
// Colaborador write-only: el pipeline nunca lee de vuelta. Las
// implementaciones deben tolerar escrituras concurrentes.
type AuditRepository interface {
	// InsertTradeEvent registra un TradeEvent aceptado.
	InsertTradeEvent(ctx context.Context, event *TradeEvent) error

	// InsertTradeResult registra un resultado de ejecución reportado por MT5.
	InsertTradeResult(ctx context.Context, result *TradeResult) error
}
