package natsbus

import (
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

type Client struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// Connect establishes the NATS connection and makes sure the MAIL_EVENTS
// stream exists. The mail delivery service consumes it.
func Connect(url string) (*Client, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(1 * time.Second),
		nats.ReconnectJitter(500*time.Millisecond, 2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("WARN NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("INFO NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("INFO NATS connection closed")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	log.Printf("INFO Connected to NATS at %s", nc.ConnectedUrl())

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if err := ensureMailStream(js); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure mail stream: %w", err)
	}

	return &Client{nc: nc, js: js}, nil
}

// Publish sends a message through JetStream so mail events survive a mail
// service restart.
func (c *Client) Publish(subject string, data []byte) error {
	_, err := c.js.Publish(subject, data)
	return err
}

// Close drains and closes the NATS connection.
func (c *Client) Close() error {
	return c.nc.Drain()
}

func ensureMailStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo("MAIL_EVENTS")
	if err == nats.ErrStreamNotFound {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:       "MAIL_EVENTS",
			Subjects:   []string{"mail.>"},
			Retention:  nats.LimitsPolicy,
			MaxAge:     24 * time.Hour,
			MaxMsgSize: 64 * 1024,
			Discard:    nats.DiscardOld,
			Storage:    nats.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("create stream MAIL_EVENTS: %w", err)
		}
		log.Println("INFO Created JetStream stream MAIL_EVENTS")
		return nil
	}
	return err
}
