package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the mNotify quick SMS endpoint.
const DefaultEndpoint = "https://api.mnotify.com/api/sms/quick"

// DefaultTimeout bounds one provider round trip.
const DefaultTimeout = 15 * time.Second

// Config configures an MNotify client.
type Config struct {
	APIKey   string
	Sender   string
	Message  string
	Endpoint string
	Client   *http.Client
	Logger   *slog.Logger
}

// MNotify delivers messages through the mNotify HTTP API.
// It is safe for concurrent use.
type MNotify struct {
	cfg Config
}

// NewMNotify creates a client, filling unset fields with defaults.
func NewMNotify(cfg Config) (*MNotify, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("mnotify api key is required")
	}
	if cfg.Sender == "" {
		return nil, errors.New("mnotify sender id is required")
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &MNotify{cfg: cfg}, nil
}

type quickRequest struct {
	Recipient    []string `json:"recipient"`
	Sender       string   `json:"sender"`
	Message      string   `json:"message"`
	IsSchedule   string   `json:"is_schedule"`
	ScheduleDate string   `json:"schedule_date"`
}

type quickResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Send formats and validates phone, then posts the configured message.
func (m *MNotify) Send(ctx context.Context, phone string) (Result, error) {
	phone = FormatPhoneNumber(phone)
	if !ValidPhone(phone) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	payload, err := json.Marshal(quickRequest{
		Recipient:    []string{phone},
		Sender:       m.cfg.Sender,
		Message:      m.cfg.Message,
		IsSchedule:   "false",
		ScheduleDate: "",
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode sms request: %w", err)
	}

	endpoint, err := m.endpoint()
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.cfg.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to reach sms provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read sms response: %w", err)
	}

	res := Result{Phone: phone, StatusCode: resp.StatusCode, Body: string(body)}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		m.cfg.Logger.Warn("sms rejected", "status", resp.StatusCode, "phone", phone)
		return res, fmt.Errorf("%w: %s", ErrSendFailed, providerMessage(body))
	}

	m.cfg.Logger.Info("sms sent", "status", resp.StatusCode, "phone", phone)
	return res, nil
}

func (m *MNotify) endpoint() (string, error) {
	u, err := url.Parse(m.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid sms endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", m.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// providerMessage extracts the reason from a rejection body.
func providerMessage(body []byte) string {
	var r quickResponse
	if err := json.Unmarshal(body, &r); err != nil {
		if len(body) > 0 {
			return string(body)
		}
		return "Failed to send SMS"
	}
	switch {
	case r.Message != "":
		return r.Message
	case r.Error != "":
		return r.Error
	}
	return "Failed to send SMS"
}
