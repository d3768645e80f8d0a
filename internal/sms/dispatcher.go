package sms

import "log"

type Message struct {
	Phone string
	Body  string
}

type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.sender.Send(msg.Phone, msg.Body); err != nil {
			log.Println("sms error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
		// queued
	default:
		// provider backlog must never block a login
		log.Println("sms queue full, dropping message")
	}
}
