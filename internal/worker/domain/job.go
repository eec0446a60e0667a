package domain

import (
	"github.com/cuongbtq/taskqueue-be/internal/task"
	amqp "github.com/rabbitmq/amqp091-go"
)

// JobMessage is a decoded job paired with the delivery it arrived on,
// which is used to ack or nack it once processed
type JobMessage struct {
	Message  *task.Message
	Delivery amqp.Delivery
}

// JobID returns the id of the carried job
func (m *JobMessage) JobID() string {
	return m.Message.JobID
}
