package queue

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestForwardCopiesDeliveries(t *testing.T) {
	msgs := make(chan amqp.Delivery, 2)
	merged := make(chan amqp.Delivery)
	done := make(chan struct{})
	defer close(done)

	go forward(msgs, merged, done)

	msgs <- amqp.Delivery{RoutingKey: ConfirmedQueueName}
	msgs <- amqp.Delivery{RoutingKey: CancelledQueueName}
	close(msgs)

	for _, want := range []string{ConfirmedQueueName, CancelledQueueName} {
		select {
		case d := <-merged:
			if d.RoutingKey != want {
				t.Fatalf("routing key = %q; want %q", d.RoutingKey, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for forwarded delivery")
		}
	}
}

func TestForwardExitsWhenDoneCloses(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	merged := make(chan amqp.Delivery) // nobody reads: the send must not hang
	done := make(chan struct{})

	exited := make(chan struct{})
	go func() {
		forward(msgs, merged, done)
		close(exited)
	}()

	msgs <- amqp.Delivery{RoutingKey: ConfirmedQueueName}
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("forwarder did not exit after done closed")
	}
}
