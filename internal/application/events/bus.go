package events

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lot-pos/lot-api/pkg/logger"
)

// Bus es un despachador en proceso de eventos SaleCompleted. Cada evento se
// encola y se entrega a todos los handlers registrados desde una goroutine
// dedicada, de modo que Publish nunca bloquea el camino de la venta.
type Bus struct {
	log      *logger.Logger
	handlers []Handler
	queue    chan SaleCompleted
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	once     sync.Once
}

// NewBus crea el bus con la capacidad de cola indicada.
func NewBus(log *logger.Logger, queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Bus{
		log:   log,
		queue: make(chan SaleCompleted, queueSize),
	}
}

// Subscribe registra un handler. Debe llamarse antes de Start.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Start arranca la goroutine de despacho.
func (b *Bus) Start() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for event := range b.queue {
			b.dispatch(event)
		}
	}()
}

// Publish encola el evento. Si la cola está llena o el bus ya cerró, el
// evento se descarta con un log de advertencia; los reportes son derivados y
// pueden regenerarse bajo demanda.
func (b *Bus) Publish(event SaleCompleted) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	// El RLock garantiza que ningún Publish en curso se solape con el
	// close(queue) de Close: cerrar exige el Lock exclusivo.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.log.Warn().Int64("sale_id", event.SaleID).Msg("bus cerrado, evento de venta descartado")
		return
	}

	select {
	case b.queue <- event:
	default:
		b.log.Warn().Int64("sale_id", event.SaleID).Msg("cola de eventos llena, evento de venta descartado")
	}
}

// Close detiene la recepción de eventos y espera a que se drene la cola.
func (b *Bus) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.queue)
		b.mu.Unlock()
	})
	b.wg.Wait()
}

func (b *Bus) dispatch(event SaleCompleted) {
	for _, h := range b.handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error().
						Int64("sale_id", event.SaleID).
						Interface("panic", r).
						Msg("pánico en consumidor de eventos de venta")
				}
			}()
			h.Handle(event)
		}()
	}
}
