// Package push delivers notifications to browser push subscriptions
// using the Web Push protocol with VAPID authentication.
package push

import (
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Subscription is one stored browser push endpoint with its keys.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// Store lists active subscriptions and prunes dead ones.
type Store interface {
	All() ([]Subscription, error)
	Remove(endpoint string) error
}

// WebPush sends payloads to every stored subscription.
type WebPush struct {
	store Store
	opts  *webpush.Options
}

// NewWebPush creates a sender authenticated with the given VAPID key
// pair. subject is the contact URI (mailto: address) announced to push
// services.
func NewWebPush(store Store, subject, publicKey, privateKey string) *WebPush {
	return &WebPush{
		store: store,
		opts: &webpush.Options{
			Subscriber:      subject,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             3600,
		},
	}
}

// Send delivers the payload to every subscriber, best-effort.
// Per-subscriber failures are logged and never propagated; endpoints
// the push service reports gone (404/410) are removed from the store.
// Only a failure to list the subscriptions is returned.
func (w *WebPush) Send(payload []byte) error {
	subs, err := w.store.All()
	if err != nil {
		return errors.Wrap(err, "listing push subscriptions")
	}

	for _, sub := range subs {
		w.sendOne(payload, sub)
	}
	return nil
}

func (w *WebPush) sendOne(payload []byte, sub Subscription) {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotification(payload, target, w.opts)
	if err != nil {
		log.WithError(err).WithField("endpoint", sub.Endpoint).Warn("push delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		log.WithField("endpoint", sub.Endpoint).Info("push subscription expired, removing")
		if err := w.store.Remove(sub.Endpoint); err != nil {
			log.WithError(err).WithField("endpoint", sub.Endpoint).Warn("failed to remove expired subscription")
		}
	}
}
