package push

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	subs    []Subscription
	removed []string
	listErr error
}

func (f *fakeStore) All() ([]Subscription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subs, nil
}

func (f *fakeStore) Remove(endpoint string) error {
	f.removed = append(f.removed, endpoint)
	return nil
}

// newTestSubscription builds a subscription with a real P-256 key pair
// so the payload encryption inside the sender succeeds.
func newTestSubscription(t *testing.T, endpoint string) Subscription {
	t.Helper()

	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return Subscription{
		Endpoint: endpoint,
		P256dh:   base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
		Auth:     base64.RawURLEncoding.EncodeToString(auth),
	}
}

func newTestSender(t *testing.T, store Store) *WebPush {
	t.Helper()

	private, public, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	return NewWebPush(store, "mailto:ops@example.com", public, private)
}

func TestSendDeliversToAllSubscribers(t *testing.T) {
	var delivered int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered++
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := &fakeStore{subs: []Subscription{
		newTestSubscription(t, server.URL+"/sub/1"),
		newTestSubscription(t, server.URL+"/sub/2"),
	}}

	err := newTestSender(t, store).Send([]byte(`{"title":"reminder"}`))
	require.NoError(t, err)

	assert.Equal(t, 2, delivered)
	assert.Empty(t, store.removed)
}

func TestSendRemovesGoneEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	sub := newTestSubscription(t, server.URL+"/sub/expired")
	store := &fakeStore{subs: []Subscription{sub}}

	err := newTestSender(t, store).Send([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, []string{sub.Endpoint}, store.removed)
}

func TestSendSwallowsPerSubscriberFailures(t *testing.T) {
	store := &fakeStore{subs: []Subscription{
		{Endpoint: "http://127.0.0.1:1/unreachable", P256dh: "not-a-key", Auth: "nope"},
	}}

	err := newTestSender(t, store).Send([]byte(`{}`))
	assert.NoError(t, err)
}

func TestSendFailsWhenStoreUnavailable(t *testing.T) {
	store := &fakeStore{listErr: errors.New("database locked")}

	err := newTestSender(t, store).Send([]byte(`{}`))
	assert.Error(t, err)
}
