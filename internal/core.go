package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/xKoRx/bridge/domain"
	"github.com/xKoRx/bridge/internal/repository"
	"github.com/xKoRx/bridge/telemetry"
	"github.com/xKoRx/bridge/telemetry/semconv"
)

// Bridge representa el servicio principal.
//
// Responsabilidades:
//   - Boundary HTTP (submit NT8, polling MT5, resultados, health)
//   - Pipeline de relay (usando domain/)
//   - Store de órdenes pendientes (FIFO por default)
//   - Journal de auditoría async (CSV + PostgreSQL opcional)
//   - Telemetría (logs + métricas)
type Bridge struct {
	config    *Config
	telemetry *telemetry.Client

	store  PendingStore
	audit  *AuditJournal
	relay  *RelayService
	server *Server

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBridge cablea todos los componentes a partir de la config.
func NewBridge(ctx context.Context, cfg *Config, tel *telemetry.Client) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	bridgeCtx, cancel := context.WithCancel(ctx)

	var auditRepo domain.AuditRepository
	if dsn := cfg.PostgresDSN(); dsn != "" {
		db, err := repository.Open(bridgeCtx, dsn)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to connect audit repository: %w", err)
		}
		auditRepo = repository.NewPostgresAuditRepository(db)
	}

	store := NewPendingStore(cfg.QueueMode)
	audit := NewAuditJournal(bridgeCtx, cfg.AuditFilePath, auditRepo, tel, cfg.AuditBufferSize)
	relay := NewRelayService(domain.NewDefaultMapper(), store, audit, tel)
	server := NewServer(relay, tel, cfg.HTTPPort)

	return &Bridge{
		config:    cfg,
		telemetry: tel,
		store:     store,
		audit:     audit,
		relay:     relay,
		server:    server,
		ctx:       bridgeCtx,
		cancel:    cancel,
	}, nil
}

// Start arranca el journal y el servidor HTTP. Bloquea hasta shutdown.
func (b *Bridge) Start() error {
	b.audit.Start()

	b.telemetry.Info(b.ctx, "bridge started",
		semconv.Bridge.QueueMode.String(string(b.store.Mode())),
	)

	return b.server.Start()
}

// Stop apaga el bridge en orden: primero el boundary HTTP (deja de aceptar
// trabajo nuevo), después el journal (drena lo encolado).
func (b *Bridge) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := b.server.Stop(shutdownCtx); err != nil {
		b.telemetry.Error(b.ctx, "http server shutdown failed", err)
	}

	b.audit.Stop()
	b.cancel()

	b.telemetry.Info(context.Background(), "bridge stopped",
		semconv.Bridge.QueueSize.Int(b.store.Size()),
	)
}

// Relay expone el servicio de relay, para tests de integración.
func (b *Bridge) Relay() *RelayService {
	return b.relay
}
