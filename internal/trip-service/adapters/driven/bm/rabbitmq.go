package bm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"trackmate/internal/config"
	"trackmate/internal/mylogger"
	messagebrokerdto "trackmate/internal/trip-service/core/domain/message_broker_dto"
	"trackmate/internal/trip-service/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange         = "trackmate_email"
	InviteRoutingKey = "email.invite.v1"
	reconnInterval   = 10
)

type RabbitMQ struct {
	ctx          context.Context
	cfg          config.RabbitMqconfig
	mylog        mylogger.Logger
	conn         *amqp.Connection
	ch           *amqp.Channel
	reconnecting bool
	mu           *sync.Mutex
}

// New creates the RabbitMQ adapter and declares the email exchange.
func New(ctx context.Context, rabbitmqCfg config.RabbitMqconfig, mylog mylogger.Logger) (ports.IInviteBroker, error) {
	r := &RabbitMQ{
		ctx:          ctx,
		cfg:          rabbitmqCfg,
		mylog:        mylog,
		mu:           &sync.Mutex{},
		reconnecting: false,
	}
	if err := r.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %v", err)
	}
	return r, nil
}

func (r *RabbitMQ) PublishInviteEmail(ctx context.Context, message messagebrokerdto.InviteEmail) error {
	mylog := r.mylog.Action("publishInviteEmail")

	if r.conn.IsClosed() {
		mylog.Error("connection to rabbitmq is closed", fmt.Errorf("closed conn"))
		go r.reconnect(r.ctx)
		return errors.New("connection is closed")
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.ch.PublishWithContext(ctx, Exchange, InviteRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (r *RabbitMQ) IsAlive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return false
	}
	if r.ch == nil || r.ch.IsClosed() {
		return false
	}

	return true
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}

	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%v:%v@%v:%v/%v",
		r.cfg.User,
		r.cfg.Password,
		r.cfg.Host,
		r.cfg.Port,
		r.cfg.VHost,
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

	r.conn = conn
	r.ch = ch
	return nil
}

func (r *RabbitMQ) reconnect(ctx context.Context) {
	r.mu.Lock()
	if r.reconnecting {
		r.mu.Unlock()
		return
	}
	r.reconnecting = true
	r.mu.Unlock()

	t := time.NewTicker(time.Second * reconnInterval)
	mylog := r.mylog.Action("mb_reconnecting")

	for {
		select {
		case <-t.C:
			if err := r.connect(); err == nil {
				t.Stop()
				mylog.Action("mb_reconnection_completed").Info("Successfully reconnected!")
				r.reconnecting = false
				return
			}
			mylog.Info("rabbitmq failed to reconnect")

		case <-ctx.Done():
			t.Stop()
			return
		}
	}
}
