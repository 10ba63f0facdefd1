package services

import (
	"log/slog"

	pubnub "github.com/pubnub/go"

	"hms/internal/repo"
	"hms/utils"
)

// Broadcast channels.
const (
	ChannelEvents        = "hms-events"
	ChannelRegistrations = "hms-registrations"
	ChannelCheckin       = "hms-checkin"
)

// NotifyService pushes store changes and scan results to connected admin
// dashboards and scanning stations. A broken broker must never fail a write
// path, so every publish runs behind a circuit breaker and failures are
// logged, not returned.
type NotifyService struct {
	pn      *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

// NewNotifyService builds the broadcaster. With empty keys it degrades to a
// no-op so local development needs no PubNub account.
func NewNotifyService(publishKey, subscribeKey, secretKey string) *NotifyService {
	s := &NotifyService{
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
	if publishKey == "" || subscribeKey == "" {
		slog.Info("pubnub keys not configured, change broadcast disabled")
		return s
	}

	cfg := pubnub.NewConfig()
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey
	cfg.SecretKey = secretKey
	s.pn = pubnub.NewPubNub(cfg)
	return s
}

// PublishChange broadcasts a committed record mutation.
func (s *NotifyService) PublishChange(ch repo.Change) {
	channel := ChannelRegistrations
	if ch.Collection == "events" {
		channel = ChannelEvents
	}
	s.publish(channel, ch)
}

// PublishScan broadcasts a scan outcome to the check-in channel.
func (s *NotifyService) PublishScan(result *ScanResult) {
	if result == nil {
		return
	}
	s.publish(ChannelCheckin, result)
}

func (s *NotifyService) publish(channel string, msg any) {
	if s == nil || s.pn == nil {
		return
	}

	err := s.breaker.Do(func() error {
		_, _, err := s.pn.Publish().
			Channel(channel).
			Message(msg).
			Execute()
		return err
	})
	if err != nil {
		slog.Warn("publish failed", "channel", channel, "error", err)
	}
}
