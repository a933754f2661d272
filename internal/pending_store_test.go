package internal

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xKoRx/bridge/domain"
)

func orderWithComment(comment string) domain.SinkOrder {
	return domain.SinkOrder{
		Time:    "2025-01-23T19:31:21.4370000",
		Symbol:  "USTECH",
		Type:    domain.ActionSell,
		Volume:  1,
		Price:   22015.25,
		Comment: comment,
	}
}

func TestFIFOStoreRoundTrip(t *testing.T) {
	store := NewFIFOStore()

	_, ok := store.Dequeue()
	assert.False(t, ok, "store vacío no debe entregar nada")
	assert.Equal(t, 0, store.Size())

	store.Enqueue(orderWithComment("A"))
	store.Enqueue(orderWithComment("B"))
	assert.Equal(t, 2, store.Size())

	first, ok := store.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "A", first.Comment)

	second, ok := store.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "B", second.Comment)

	_, ok = store.Dequeue()
	assert.False(t, ok, "tercer dequeue debe reportar vacío")
	assert.Equal(t, 0, store.Size())
}

func TestFIFOStoreConcurrentNoLossNoDuplication(t *testing.T) {
	const k = 200
	store := NewFIFOStore()

	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Enqueue(orderWithComment(fmt.Sprintf("trade_%d", i)))
		}(i)
	}
	wg.Wait()

	require.Equal(t, k, store.Size())

	seen := make(map[string]bool, k)
	for i := 0; i < k; i++ {
		order, ok := store.Dequeue()
		require.True(t, ok)
		assert.False(t, seen[order.Comment], "orden duplicada: %s", order.Comment)
		seen[order.Comment] = true
	}

	assert.Len(t, seen, k)
	_, ok := store.Dequeue()
	assert.False(t, ok)
}

func TestFIFOStoreConcurrentMixed(t *testing.T) {
	const k = 100
	store := NewFIFOStore()

	var wg sync.WaitGroup
	delivered := make(chan domain.SinkOrder, k)

	// Productores y consumidores simultáneos: ninguna orden se pierde entre
	// un enqueue y un dequeue concurrentes.
	for i := 0; i < k; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Enqueue(orderWithComment(fmt.Sprintf("trade_%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			if order, ok := store.Dequeue(); ok {
				delivered <- order
			}
		}()
	}
	wg.Wait()

	// Drenar lo que los consumidores no alcanzaron a ver
	for {
		order, ok := store.Dequeue()
		if !ok {
			break
		}
		delivered <- order
	}
	close(delivered)

	seen := make(map[string]bool)
	for order := range delivered {
		assert.False(t, seen[order.Comment], "orden duplicada: %s", order.Comment)
		seen[order.Comment] = true
	}
	assert.Len(t, seen, k, "todas las órdenes encoladas deben entregarse exactamente una vez")
}

func TestLatestStoreOverwrites(t *testing.T) {
	store := NewLatestStore()

	_, ok := store.Dequeue()
	assert.False(t, ok)

	store.Enqueue(orderWithComment("old"))
	store.Enqueue(orderWithComment("new"))
	assert.Equal(t, 1, store.Size())
	assert.Equal(t, int64(1), store.Dropped())

	order, ok := store.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "new", order.Comment, "la orden nueva reemplaza a la no entregada")

	_, ok = store.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, store.Size())
}

func TestNewPendingStoreByMode(t *testing.T) {
	assert.Equal(t, QueueModeFIFO, NewPendingStore(QueueModeFIFO).Mode())
	assert.Equal(t, QueueModeLatest, NewPendingStore(QueueModeLatest).Mode())

	// Modo desconocido cae en FIFO (la variante que no pierde trades)
	assert.Equal(t, QueueModeFIFO, NewPendingStore(QueueMode("")).Mode())
}
