package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Publisher описывает публикацию сообщений. Выделен в интерфейс,
// чтобы сервисы можно было тестировать без брокера.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// ChannelPublisher публикует сообщения через канал RabbitMQ.
type ChannelPublisher struct {
	Ch *amqp.Channel
}

// Publish сериализует сообщение в JSON и публикует его persistent-доставкой.
// Подтверждения доставки вызывающему не возвращаются.
func (p *ChannelPublisher) Publish(exchange, routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.Ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
