package internal

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xKoRx/bridge/domain"
)

// recordingAuditRepo captura inserts y el estado del contexto al momento de
// cada llamada.
type recordingAuditRepo struct {
	mu      sync.Mutex
	events  []*domain.TradeEvent
	results []*domain.TradeResult
	ctxErrs []error
}

func (r *recordingAuditRepo) InsertTradeEvent(ctx context.Context, event *domain.TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}

func (r *recordingAuditRepo) InsertTradeResult(ctx context.Context, result *domain.TradeResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}

func TestAuditJournalAppendsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	journal := NewAuditJournal(context.Background(), path, nil, newTestTelemetry(t), 10)
	journal.Start()

	journal.RecordTradeEvent(&domain.TradeEvent{
		Time:       "2025-01-23T19:31:21.4370000",
		Instrument: "NQ MAR24",
		Action:     domain.ActionBuy,
		Quantity:   1,
		Price:      22015.25,
		Account:    "TestAccount",
	})
	journal.RecordTradeEvent(&domain.TradeEvent{
		Time:       "2025-01-23T19:32:00.0000000",
		Instrument: "NQ MAR24",
		Action:     domain.ActionSell,
		Quantity:   1,
		Price:      22020.25,
		Account:    "TestAccount",
		IsExit:     true,
	})

	// Stop drena el buffer antes de retornar
	journal.Stop()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "un registro por trade aceptado")

	assert.Equal(t, []string{
		"2025-01-23T19:31:21.4370000", "NQ MAR24", "Buy", "1", "22015.25", "TestAccount",
	}, rows[0])
	assert.Equal(t, "Sell", rows[1][2])
}

func TestAuditJournalStopDrainsWithLiveContext(t *testing.T) {
	repo := &recordingAuditRepo{}
	journal := NewAuditJournal(context.Background(), "", repo, newTestTelemetry(t), 100)
	journal.Start()

	for i := 0; i < 50; i++ {
		journal.RecordTradeEvent(&domain.TradeEvent{
			Time: "T", Instrument: "NQ", Action: domain.ActionBuy,
			Quantity: 1, Price: 1, Account: "A",
		})
	}
	journal.RecordTradeResult(&domain.TradeResult{Status: "filled", Ticket: 42})

	journal.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.events, 50, "todo lo encolado antes de Stop se persiste")
	require.Len(t, repo.results, 1)

	// El drain corre con el contexto del journal vivo; cancelarlo antes
	// haría fallar cada insert con context.Canceled.
	for _, ctxErr := range repo.ctxErrs {
		assert.NoError(t, ctxErr)
	}
}

func TestAuditJournalNoPathIsNoop(t *testing.T) {
	journal := NewAuditJournal(context.Background(), "", nil, newTestTelemetry(t), 10)
	journal.Start()

	journal.RecordTradeEvent(&domain.TradeEvent{
		Time: "T", Instrument: "NQ", Action: domain.ActionBuy,
		Quantity: 1, Price: 1, Account: "A",
	})

	// No debe crear archivo ni fallar
	journal.Stop()
}
