package events_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/pkg/logger"
)

type recordingHandler struct {
	mu       sync.Mutex
	received []events.SaleCompleted
}

func (h *recordingHandler) Handle(event events.SaleCompleted) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, event)
}

func (h *recordingHandler) events() []events.SaleCompleted {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]events.SaleCompleted(nil), h.received...)
}

type panickingHandler struct{}

func (panickingHandler) Handle(events.SaleCompleted) { panic("consumidor roto") }

func testBus(handlers ...events.Handler) *events.Bus {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	bus := events.NewBus(log, 8)
	for _, h := range handlers {
		bus.Subscribe(h)
	}
	return bus
}

func saleEvent(saleID int64) events.SaleCompleted {
	return events.SaleCompleted{
		SaleID:      saleID,
		ProductID:   1,
		ProductName: "Gaseosa 1.5L",
		CategoryID:  1,
		Quantity:    2,
		UnitPrice:   decimal.RequireFromString("2.50"),
		TotalAmount: decimal.RequireFromString("5.00"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega de eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestBus_EntregaATodosLosHandlers(t *testing.T) {
	first := &recordingHandler{}
	second := &recordingHandler{}
	bus := testBus(first, second)
	bus.Start()

	bus.Publish(saleEvent(1))
	bus.Publish(saleEvent(2))
	bus.Close()

	require.Len(t, first.events(), 2)
	require.Len(t, second.events(), 2)
	assert.Equal(t, int64(1), first.events()[0].SaleID)
	assert.Equal(t, int64(2), first.events()[1].SaleID, "los eventos se entregan en orden de publicación")
}

func TestBus_AsignaEventIDAlPublicar(t *testing.T) {
	handler := &recordingHandler{}
	bus := testBus(handler)
	bus.Start()

	bus.Publish(saleEvent(1))
	bus.Publish(saleEvent(2))
	bus.Close()

	got := handler.events()
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].EventID)
	assert.NotEmpty(t, got[1].EventID)
	assert.NotEqual(t, got[0].EventID, got[1].EventID, "cada evento recibe un id propio")
}

func TestBus_PanicoEnUnHandlerNoDetieneAlResto(t *testing.T) {
	handler := &recordingHandler{}
	bus := testBus(panickingHandler{}, handler)
	bus.Start()

	bus.Publish(saleEvent(7))
	bus.Close()

	require.Len(t, handler.events(), 1)
	assert.Equal(t, int64(7), handler.events()[0].SaleID)
}

func TestBus_PublishConcurrenteConCloseNoEntraEnPanico(t *testing.T) {
	handler := &recordingHandler{}
	bus := testBus(handler)
	bus.Start()

	var wg sync.WaitGroup
	start := make(chan struct{})
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < 200; i++ {
				bus.Publish(saleEvent(int64(i)))
			}
		}()
	}

	close(start)
	bus.Close()
	wg.Wait()

	// Los publicadores tardíos descartan; los eventos que sí entraron se
	// entregaron completos antes de que Close retornara.
	for _, e := range handler.events() {
		assert.NotEmpty(t, e.EventID)
	}
}

func TestBus_PublishDespuesDeCloseNoBloquea(t *testing.T) {
	handler := &recordingHandler{}
	bus := testBus(handler)
	bus.Start()
	bus.Close()

	bus.Publish(saleEvent(9))

	assert.Empty(t, handler.events(), "tras el cierre el evento se descarta")
}
