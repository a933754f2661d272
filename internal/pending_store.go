package internal

import (
	"sync"

	"github.com/xKoRx/bridge/domain"
)

// QueueMode semántica de entrega del store de órdenes pendientes.
type QueueMode string

const (
	// QueueModeFIFO cola FIFO sin pérdida: cada orden se entrega exactamente
	// una vez, en orden de llegada. Default.
	QueueModeFIFO QueueMode = "fifo"

	// QueueModeLatest slot único: una orden nueva sobreescribe a la anterior
	// no entregada, que se descarta. Pierde trades si el EA no llega a
	// tiempo; solo para despliegues que quieren "último estado" y no flujo.
	QueueModeLatest QueueMode = "latest"
)

// PendingStore almacena órdenes hedge a la espera de pickup por el EA MT5.
//
// Todas las operaciones son atómicas entre sí: enqueues concurrentes nunca
// corrompen el store y un dequeue nunca observa un enqueue a medias.
type PendingStore interface {
	// Enqueue agrega una orden según la semántica del store.
	Enqueue(order domain.SinkOrder)

	// Dequeue remueve y retorna la siguiente orden entregable.
	// Retorna (zero, false) si no hay trabajo pendiente; nunca bloquea.
	Dequeue() (domain.SinkOrder, bool)

	// Size retorna la cantidad de órdenes pendientes.
	Size() int

	// Mode retorna la semántica de entrega del store.
	Mode() QueueMode
}

// NewPendingStore crea el store para el modo dado (default: FIFO).
func NewPendingStore(mode QueueMode) PendingStore {
	if mode == QueueModeLatest {
		return NewLatestStore()
	}
	return NewFIFOStore()
}

// FIFOStore cola FIFO no acotada de órdenes pendientes.
//
// Thread-safe. Orden de entrega = orden de llegada al store (desempate por
// adquisición del lock, no por emisión del request).
type FIFOStore struct {
	mu     sync.Mutex
	orders []domain.SinkOrder
}

// NewFIFOStore crea un FIFOStore vacío.
func NewFIFOStore() *FIFOStore {
	return &FIFOStore{}
}

// Enqueue agrega la orden al final de la cola.
func (s *FIFOStore) Enqueue(order domain.SinkOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, order)
}

// Dequeue remueve y retorna la orden más antigua.
func (s *FIFOStore) Dequeue() (domain.SinkOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.orders) == 0 {
		return domain.SinkOrder{}, false
	}

	order := s.orders[0]
	s.orders = s.orders[1:]
	if len(s.orders) == 0 {
		s.orders = nil // Liberar el backing array al drenar
	}
	return order, true
}

// Size retorna la cantidad de órdenes pendientes.
func (s *FIFOStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}

// Mode retorna QueueModeFIFO.
func (s *FIFOStore) Mode() QueueMode {
	return QueueModeFIFO
}

// LatestStore slot único con semántica "latest wins".
//
// Una orden nueva reemplaza a la anterior no entregada; Dropped() cuenta
// cuántas se descartaron así.
type LatestStore struct {
	mu      sync.Mutex
	order   *domain.SinkOrder
	dropped int64
}

// NewLatestStore crea un LatestStore vacío.
func NewLatestStore() *LatestStore {
	return &LatestStore{}
}

// Enqueue reemplaza la orden pendiente; la anterior se descarta.
func (s *LatestStore) Enqueue(order domain.SinkOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order != nil {
		s.dropped++
	}
	s.order = &order
}

// Dequeue remueve y retorna la orden pendiente, si hay.
func (s *LatestStore) Dequeue() (domain.SinkOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order == nil {
		return domain.SinkOrder{}, false
	}

	order := *s.order
	s.order = nil
	return order, true
}

// Size retorna 0 o 1.
func (s *LatestStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order == nil {
		return 0
	}
	return 1
}

// Dropped retorna cuántas órdenes no entregadas fueron sobreescritas.
func (s *LatestStore) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dropped
}

// Mode retorna QueueModeLatest.
func (s *LatestStore) Mode() QueueMode {
	return QueueModeLatest
}
