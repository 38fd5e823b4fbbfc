package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	appevents "github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/pkg/config"
	"github.com/lot-pos/lot-api/pkg/logger"
)

var _ appevents.Handler = (*KafkaPublisher)(nil)

// KafkaPublisher reenvía los eventos SaleCompleted a un tópico Kafka para
// integraciones externas. Se suscribe al bus en proceso como un handler más:
// un fallo de publicación se registra y se descarta, nunca afecta la venta.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher construye el publicador con los brokers y tópico configurados.
func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &KafkaPublisher{writer: writer, log: log}
}

// Handle publica el evento con el id de venta como clave de partición.
func (p *KafkaPublisher) Handle(event appevents.SaleCompleted) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Int64("sale_id", event.SaleID).Msg("fallo serializando evento de venta")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.SaleID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Int64("sale_id", event.SaleID).Msg("fallo publicando evento de venta en kafka")
		return
	}
	p.log.Debug().Int64("sale_id", event.SaleID).Msg("evento de venta publicado en kafka")
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
