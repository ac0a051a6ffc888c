package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublish_EncodesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch}

	err := p.Publish("booking.updated", map[string]any{"id": 7, "startDate": "2024-06-05"})

	require.NoError(t, err)
	assert.Equal(t, BookingExchange, ch.exchange)
	assert.Equal(t, "booking.updated", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "booking.updated", ch.msg.Type)
	_, err = uuid.Parse(ch.msg.MessageId)
	assert.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "2024-06-05", body["startDate"])
}

func TestPublish_MarshalError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{}}

	err := p.Publish("booking.updated", make(chan int))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "marshal payload")
}

func TestPublish_ChannelError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: errors.New("channel closed")}}

	err := p.Publish("booking.deleted", map[string]int{"id": 1})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestClose_ClosesChannel(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch}

	p.Close()

	assert.True(t, ch.closed)
}
