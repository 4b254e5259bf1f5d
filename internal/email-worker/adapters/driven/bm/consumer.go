package bm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trackmate/internal/config"
	"trackmate/internal/email-worker/core/ports"
	"trackmate/internal/mylogger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange         = "trackmate_email"
	Queue            = "email_invites"
	InviteRoutingKey = "email.invite.v1"
	prefetch         = 1
	reconnInterval   = 10
)

// Consumer drains the invite queue and hands each delivery to the worker.
// Failed deliveries are nacked with requeue so a broker or mail outage does
// not lose invitations.
type Consumer struct {
	ctx    context.Context
	cfg    config.RabbitMqconfig
	mylog  mylogger.Logger
	worker ports.IInviteWorker
	conn   *amqp.Connection
	ch     *amqp.Channel
	mu     sync.Mutex
}

func NewConsumer(ctx context.Context, cfg config.RabbitMqconfig, mylog mylogger.Logger, worker ports.IInviteWorker) (*Consumer, error) {
	c := &Consumer{
		ctx:    ctx,
		cfg:    cfg,
		mylog:  mylog,
		worker: worker,
	}
	if err := c.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %v", err)
	}
	return c, nil
}

// Run consumes until the context is cancelled. When the broker connection
// drops, it reconnects and resumes.
func (c *Consumer) Run() error {
	mylog := c.mylog.Action("consume_invites")

	for {
		deliveries, err := c.ch.Consume(Queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", Queue, err)
		}
		mylog.Info("Consuming invite queue", "queue", Queue)

		if err := c.drain(deliveries); err != nil {
			return err
		}

		select {
		case <-c.ctx.Done():
			return nil
		default:
		}

		mylog.Warn("Delivery channel closed, reconnecting")
		if err := c.reconnect(); err != nil {
			return err
		}
	}
}

func (c *Consumer) drain(deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-c.ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := c.worker.HandleDelivery(c.ctx, d.Body); err != nil {
				if nackErr := d.Nack(false, true); nackErr != nil {
					c.mylog.Error("Failed to nack delivery", nackErr)
				}
				continue
			}
			if err := d.Ack(false); err != nil {
				c.mylog.Error("Failed to ack delivery", err)
			}
		}
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil && !c.ch.IsClosed() {
		if err := c.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

func (c *Consumer) connect() error {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%v:%v@%v:%v/%v",
		c.cfg.User,
		c.cfg.Password,
		c.cfg.Host,
		c.cfg.Port,
		c.cfg.VHost,
	))
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(Queue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(Queue, InviteRoutingKey, Exchange, false, nil); err != nil {
		return err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.ch = ch
	c.mu.Unlock()
	return nil
}

func (c *Consumer) reconnect() error {
	t := time.NewTicker(time.Second * reconnInterval)
	defer t.Stop()

	mylog := c.mylog.Action("mb_reconnecting")
	for {
		select {
		case <-t.C:
			if err := c.connect(); err == nil {
				mylog.Action("mb_reconnection_completed").Info("Successfully reconnected!")
				return nil
			}
			mylog.Info("rabbitmq failed to reconnect")

		case <-c.ctx.Done():
			return nil
		}
	}
}
