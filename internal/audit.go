package internal

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/xKoRx/bridge/domain"
	"github.com/xKoRx/bridge/telemetry"
	"github.com/xKoRx/bridge/telemetry/semconv"
	"github.com/xKoRx/bridge/utils"
	"go.opentelemetry.io/otel/attribute"
)

// auditEntry solicitud de persistencia async del journal.
//
// Exactamente uno de event/result es no-nil.
type auditEntry struct {
	event  *domain.TradeEvent
	result *domain.TradeResult
}

// AuditJournal journal de auditoría append-only del bridge.
//
// Responsabilidades:
//   - CSV append-only con un registro por TradeEvent aceptado
//   - Persistencia opcional en PostgreSQL (trade_log / trade_results)
//   - Canal con buffer y worker dedicado: el hot-path nunca espera I/O
//
// Colaborador write-only: fallos se loguean y no se propagan al request.
type AuditJournal struct {
	path      string
	repo      domain.AuditRepository // nil si Postgres no está configurado
	entryChan chan auditEntry
	telemetry *telemetry.Client

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAuditJournal crea un journal de auditoría.
//
// repo puede ser nil (solo CSV). bufferSize <= 0 usa el default.
func NewAuditJournal(ctx context.Context, path string, repo domain.AuditRepository, tel *telemetry.Client, bufferSize int) *AuditJournal {
	if bufferSize <= 0 {
		bufferSize = 1000 // Default
	}

	journalCtx, cancel := context.WithCancel(ctx)

	return &AuditJournal{
		path:      path,
		repo:      repo,
		entryChan: make(chan auditEntry, bufferSize),
		telemetry: tel,
		ctx:       journalCtx,
		cancel:    cancel,
	}
}

// Start inicia el worker de persistencia async.
func (j *AuditJournal) Start() {
	j.wg.Add(1)
	go j.persistWorker()
}

// Stop detiene el journal drenando las entradas pendientes.
//
// El contexto del journal se cancela recién después del drain: las entradas
// ya encoladas se persisten con contexto vivo.
func (j *AuditJournal) Stop() {
	close(j.entryChan)
	j.wg.Wait()
	j.cancel()
}

// RecordTradeEvent encola un TradeEvent aceptado. Fire-and-forget: si el
// buffer está lleno la entrada se descarta con un warning.
func (j *AuditJournal) RecordTradeEvent(event *domain.TradeEvent) {
	select {
	case j.entryChan <- auditEntry{event: event}:
	default:
		j.telemetry.Warn(j.ctx, "audit buffer full, trade event dropped",
			semconv.Bridge.Instrument.String(event.Instrument),
		)
	}
}

// RecordTradeResult encola un resultado de ejecución del EA MT5.
func (j *AuditJournal) RecordTradeResult(result *domain.TradeResult) {
	select {
	case j.entryChan <- auditEntry{result: result}:
	default:
		j.telemetry.Warn(j.ctx, "audit buffer full, trade result dropped",
			semconv.Bridge.ResultStatus.String(result.Status),
		)
	}
}

// persistWorker procesa entradas del journal de forma async.
//
// Sigue drenando tras el cancel: el canal cerrado es la señal de fin, para
// no perder entradas encoladas antes de Stop.
func (j *AuditJournal) persistWorker() {
	defer j.wg.Done()

	for entry := range j.entryChan {
		switch {
		case entry.event != nil:
			j.persistEvent(entry.event)
		case entry.result != nil:
			j.persistResult(entry.result)
		}
	}
}

func (j *AuditJournal) persistEvent(event *domain.TradeEvent) {
	if err := j.appendCSV(event); err != nil {
		j.telemetry.Error(j.ctx, "failed to append trade to audit file", err,
			attribute.String("path", j.path),
			semconv.Bridge.Instrument.String(event.Instrument),
		)
	}

	if j.repo != nil {
		if err := j.repo.InsertTradeEvent(j.ctx, event); err != nil {
			j.telemetry.Error(j.ctx, "failed to persist trade event", err,
				semconv.Bridge.Instrument.String(event.Instrument),
				semconv.Bridge.Account.String(event.Account),
			)
		}
	}
}

func (j *AuditJournal) persistResult(result *domain.TradeResult) {
	if j.repo == nil {
		return
	}
	if err := j.repo.InsertTradeResult(j.ctx, result); err != nil {
		j.telemetry.Error(j.ctx, "failed to persist trade result", err,
			semconv.Bridge.ResultStatus.String(result.Status),
			semconv.Bridge.Ticket.Int64(result.Ticket),
			attribute.String("payload", utils.ToJSONString(result.Raw)),
		)
	}
}

// appendCSV agrega una fila al archivo de auditoría.
//
// Formato heredado del indicador origen: time,instrument,action,quantity,
// price,account. Sin header, un registro por trade.
func (j *AuditJournal) appendCSV(event *domain.TradeEvent) error {
	if j.path == "" {
		return nil
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		event.Time,
		event.Instrument,
		string(event.Action),
		strconv.FormatFloat(event.Quantity, 'f', -1, 64),
		strconv.FormatFloat(event.Price, 'f', -1, 64),
		event.Account,
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
