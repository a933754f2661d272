// Package repository provee implementaciones de persistencia para Bridge.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // Driver PostgreSQL
	"github.com/xKoRx/bridge/domain"
	"github.com/xKoRx/bridge/utils"
)

// NewPostgresAuditRepository crea un AuditRepository sobre PostgreSQL.
//
// Uso:
//
//	db, err := sql.Open("postgres", connStr)
//	repo := repository.NewPostgresAuditRepository(db)
func NewPostgresAuditRepository(db *sql.DB) domain.AuditRepository {
	return &postgresAuditRepo{db: db}
}

type postgresAuditRepo struct {
	db *sql.DB
}

// InsertTradeEvent registra un TradeEvent aceptado en bridge.trade_log.
func (r *postgresAuditRepo) InsertTradeEvent(ctx context.Context, event *domain.TradeEvent) error {
	query := `
		INSERT INTO bridge.trade_log (
			time, instrument, action, quantity, price, account, is_exit
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.Time,
		event.Instrument,
		event.Action,
		event.Quantity,
		event.Price,
		event.Account,
		event.IsExit,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade event: %w", err)
	}
	return nil
}

// InsertTradeResult registra un resultado de ejecución en bridge.trade_results.
//
// El payload completo se guarda como JSONB para no perder campos que el EA
// agregue en versiones futuras.
func (r *postgresAuditRepo) InsertTradeResult(ctx context.Context, result *domain.TradeResult) error {
	rawJSON, err := utils.MarshalJSON(result.Raw)
	if err != nil {
		rawJSON = []byte("{}")
	}

	query := `
		INSERT INTO bridge.trade_results (
			status, ticket, symbol, volume, price, error_message, payload
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	_, err = r.db.ExecContext(ctx, query,
		result.Status,
		result.Ticket,
		result.Symbol,
		result.Volume,
		result.Price,
		result.ErrorMessage,
		rawJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade result: %w", err)
	}
	return nil
}

// Open abre la conexión PostgreSQL con el DSN dado y la verifica.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}
