package rabbitmq

import (
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestPublishWithoutChannel(t *testing.T) {
	client := &Client{}

	err := client.Publish("property.created", []byte(`{"propertyID":1}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel is not available")
}

func TestConsumePropertyEventsWithoutChannel(t *testing.T) {
	client := &Client{}

	err := client.ConsumePropertyEvents(func(msg amqp.Delivery) error { return nil })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available for consumption")
}
