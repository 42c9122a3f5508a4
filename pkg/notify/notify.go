// Package notify sends motivational SMS messages to a phone number.
package notify

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidPhone is returned when a number is not 10 digits starting with 0.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrSendFailed is returned when the provider rejects the message.
	ErrSendFailed = errors.New("failed to send sms")
)

// Status messages shown to users.
const (
	MsgSent        = "Motivation SMS sent successfully! Check your phone."
	MsgInvalid     = "Invalid phone number. Please use format: 0200463804"
	MsgUnreachable = "Failed to connect to SMS service. Please check your internet connection."
)

// DefaultMessage is the motivational text sent when none is configured.
const DefaultMessage = "Keep pushing forward! You are doing great things today. Stay motivated and never give up on your dreams! 💪"

// Result describes a delivered message.
type Result struct {
	Phone      string `json:"phone"`
	StatusCode int    `json:"status_code"`
	Body       string `json:"body,omitempty"`
}

// Notifier sends one message to one recipient.
type Notifier interface {
	Send(ctx context.Context, phone string) (Result, error)
}

// FormatPhoneNumber normalises a Ghana number to its local 0XXXXXXXXX form.
// Non-digits are dropped, a 233 country prefix becomes 0 and a bare
// 9-digit subscriber number gets a leading 0.
func FormatPhoneNumber(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()

	switch {
	case strings.HasPrefix(digits, "233"):
		return "0" + digits[3:]
	case !strings.HasPrefix(digits, "0") && len(digits) == 9:
		return "0" + digits
	}
	return digits
}

// ValidPhone reports whether phone, already formatted, can be delivered to.
func ValidPhone(phone string) bool {
	return len(phone) == 10 && strings.HasPrefix(phone, "0")
}
