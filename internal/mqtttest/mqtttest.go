// Package mqtttest provides an in-memory mqtt.Client for tests.
package mqtttest

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Published struct {
	Topic    string
	Retained bool
	Payload  string
}

// Client records publications and routes Deliver calls to subscribers.
// Methods not overridden here panic.
type Client struct {
	mqtt.Client

	mutex         sync.Mutex
	published     []Published
	subscriptions map[string]mqtt.MessageHandler

	// PublishErr, when set, fails every publication.
	PublishErr error
}

func NewClient() *Client {
	return &Client{subscriptions: map[string]mqtt.MessageHandler{}}
}

func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if c.PublishErr != nil {
		return &Token{err: c.PublishErr}
	}

	var s string
	switch p := payload.(type) {
	case []byte:
		s = string(p)
	case string:
		s = p
	default:
		s = fmt.Sprintf("%v", p)
	}

	c.mutex.Lock()
	c.published = append(c.published, Published{Topic: topic, Retained: retained, Payload: s})
	c.mutex.Unlock()

	return &Token{}
}

func (c *Client) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mutex.Lock()
	c.subscriptions[topic] = callback
	c.mutex.Unlock()

	return &Token{}
}

// Deliver hands payload to the subscriber of topic and reports whether one
// existed.
func (c *Client) Deliver(topic string, payload string) bool {
	c.mutex.Lock()
	handler, ok := c.subscriptions[topic]
	c.mutex.Unlock()

	if !ok {
		return false
	}

	handler(c, &Message{topic: topic, payload: []byte(payload)})
	return true
}

func (c *Client) Published() []Published {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]Published(nil), c.published...)
}

// Last returns the latest payload published on topic.
func (c *Client) Last(topic string) (string, bool) {
	published := c.Published()
	for i := len(published) - 1; i >= 0; i-- {
		if published[i].Topic == topic {
			return published[i].Payload, true
		}
	}
	return "", false
}

func (c *Client) Subscribed(topic string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.subscriptions[topic]
	return ok
}

type Token struct {
	err error
}

func (t *Token) Wait() bool {
	return true
}

func (t *Token) WaitTimeout(time.Duration) bool {
	return true
}

func (t *Token) Done() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

func (t *Token) Error() error {
	return t.err
}

type Message struct {
	topic   string
	payload []byte
}

func (m *Message) Duplicate() bool   { return false }
func (m *Message) Qos() byte         { return 0 }
func (m *Message) Retained() bool    { return false }
func (m *Message) Topic() string     { return m.topic }
func (m *Message) MessageID() uint16 { return 0 }
func (m *Message) Payload() []byte   { return m.payload }
func (m *Message) Ack()              {}
