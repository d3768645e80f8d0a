// Package sms delivers OTP codes to phones. Delivery is fire-and-forget:
// a failed or dropped send is logged and never blocks verification.
package sms

import "log"

type Sender interface {
	Send(phone, message string) error
}

// LogSender is the development stand-in for a real SMS provider.
type LogSender struct{}

func (LogSender) Send(phone, message string) error {
	log.Printf("sms to %s: %s", phone, message)
	return nil
}
