package internal

import (
	"context"
	"fmt"

	"github.com/xKoRx/bridge/domain"
	"github.com/xKoRx/bridge/telemetry"
	"github.com/xKoRx/bridge/telemetry/semconv"
)

// RelayService orquesta el pipeline de relay.
//
// Responsabilidades:
//   - Submit: validación → mapeo de símbolo → inversión de dirección → enqueue
//   - Pickup: dequeue no bloqueante para el polling del EA MT5
//   - ReportResult: registro best-effort de resultados de ejecución
//   - Telemetría (logs + métricas)
//
// La validación y transformación viven en domain/; acá solo se encadenan.
type RelayService struct {
	mapper    *domain.Mapper
	store     PendingStore
	audit     *AuditJournal
	telemetry *telemetry.Client
}

// NewRelayService crea el servicio de relay.
//
// audit puede ser nil (sin journal, p.ej. en tests).
func NewRelayService(mapper *domain.Mapper, store PendingStore, audit *AuditJournal, tel *telemetry.Client) *RelayService {
	return &RelayService{
		mapper:    mapper,
		store:     store,
		audit:     audit,
		telemetry: tel,
	}
}

// Submit procesa un trade entrante desde la plataforma origen.
//
// Pipeline completo: parse+validate → transform → enqueue → audit.
// En fallo de validación retorna *domain.BridgeError sin encolar nada.
func (s *RelayService) Submit(ctx context.Context, raw []byte) (order *domain.SinkOrder, err error) {
	ctx, span := s.telemetry.StartSpan(ctx, "bridge.submit")
	defer span.End()

	s.telemetry.RecordCounter(ctx, "bridge.trades.received", 1)

	event, err := domain.JSONToTradeEvent(raw)
	if err != nil {
		bridgeErr := asBridgeError(err)
		s.telemetry.Warn(ctx, "trade rejected",
			semconv.Bridge.ErrorCode.String(string(bridgeErr.Code)),
		)
		s.telemetry.RecordCounter(ctx, "bridge.trades.rejected", 1,
			semconv.Bridge.ErrorCode.String(string(bridgeErr.Code)),
		)
		return nil, bridgeErr
	}

	// La transformación es total para eventos validados; el recover cubre el
	// caso imposible convirtiéndolo en INTERNAL_TRANSFORM en vez de un crash.
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewError(domain.ErrInternalTransform,
				fmt.Sprintf("transform failed: %v", r))
			order = nil
			s.telemetry.Error(ctx, "unexpected transform failure", err,
				semconv.Bridge.Instrument.String(event.Instrument),
			)
		}
	}()

	sinkOrder := domain.TradeEventToSinkOrder(event, s.mapper)
	s.store.Enqueue(sinkOrder)

	if s.audit != nil {
		s.audit.RecordTradeEvent(event)
	}

	s.telemetry.Info(ctx, "trade enqueued for pickup",
		semconv.Bridge.Instrument.String(event.Instrument),
		semconv.Bridge.Symbol.String(sinkOrder.Symbol),
		semconv.Bridge.Action.String(event.Action.String()),
		semconv.Bridge.OrderType.String(sinkOrder.Type.String()),
		semconv.Bridge.Account.String(event.Account),
		semconv.Bridge.QueueSize.Int(s.store.Size()),
	)
	s.telemetry.RecordCounter(ctx, "bridge.trades.enqueued", 1,
		semconv.Bridge.Symbol.String(sinkOrder.Symbol),
	)

	return &sinkOrder, nil
}

// Pickup entrega la siguiente orden pendiente al EA MT5.
//
// Poll, no push: con el store vacío retorna (zero, false) de inmediato.
// La cola vacía es un resultado normal, nunca un error.
func (s *RelayService) Pickup(ctx context.Context) (domain.SinkOrder, bool) {
	order, ok := s.store.Dequeue()
	if !ok {
		return domain.SinkOrder{}, false
	}

	s.telemetry.Info(ctx, "trade delivered to sink",
		semconv.Bridge.Symbol.String(order.Symbol),
		semconv.Bridge.OrderType.String(order.Type.String()),
		semconv.Bridge.QueueSize.Int(s.store.Size()),
	)
	s.telemetry.RecordCounter(ctx, "bridge.trades.delivered", 1,
		semconv.Bridge.Symbol.String(order.Symbol),
	)

	return order, true
}

// ReportResult registra un resultado de ejecución reportado por el EA.
//
// Solo logging y audit: ninguna transición de estado depende del resultado.
// Error únicamente si el payload no es JSON parseable.
func (s *RelayService) ReportResult(ctx context.Context, raw []byte) (*domain.TradeResult, error) {
	result, err := domain.JSONToTradeResult(raw)
	if err != nil {
		s.telemetry.Warn(ctx, "unparseable trade result")
		return nil, err
	}

	s.telemetry.Info(ctx, "trade result received",
		semconv.Bridge.ResultStatus.String(result.Status),
		semconv.Bridge.Ticket.Int64(result.Ticket),
		semconv.Bridge.Symbol.String(result.Symbol),
	)
	s.telemetry.RecordCounter(ctx, "bridge.results.received", 1,
		semconv.Bridge.ResultStatus.String(result.Status),
	)

	if s.audit != nil {
		s.audit.RecordTradeResult(result)
	}

	return result, nil
}

// QueueSize retorna la cantidad de órdenes pendientes, para el health check.
func (s *RelayService) QueueSize() int {
	return s.store.Size()
}

// asBridgeError normaliza cualquier error del pipeline a *BridgeError.
func asBridgeError(err error) *domain.BridgeError {
	if bridgeErr, ok := err.(*domain.BridgeError); ok {
		return bridgeErr
	}
	return domain.WrapError(domain.ErrUnknown, "unexpected error", err)
}
