package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"volley-schedule-service/internal/calendar"
	"volley-schedule-service/internal/push"
	"volley-schedule-service/internal/schedule"
)

func newHandlers(sched Schedule, subs Subscriptions) *handlers {
	return &handlers{
		schedule: sched,
		subs:     subs,
	}
}

type handlers struct {
	schedule Schedule
	subs     Subscriptions
}

// ScheduleHandler serves the current snapshot, refreshing it when
// stale. A refresh already running elsewhere maps to 429 so clients
// know to simply retry, while a broken cycle maps to 500.
func (h *handlers) ScheduleHandler(res http.ResponseWriter, req *http.Request) {
	snap, err := h.schedule.GetSchedule(req.Context())
	if err != nil {
		writeScheduleError(res, err)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(snap); err != nil {
		log.WithError(err).Error("failed to encode schedule response")
	}
}

// CalendarHandler serves the snapshot as a downloadable iCalendar file.
func (h *handlers) CalendarHandler(res http.ResponseWriter, req *http.Request) {
	snap, err := h.schedule.GetSchedule(req.Context())
	if err != nil {
		writeScheduleError(res, err)
		return
	}

	res.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	res.Header().Set("Content-Disposition", `attachment; filename="match-schedule.ics"`)
	if _, err := res.Write([]byte(calendar.Generate(snap.Matches))); err != nil {
		log.WithError(err).Error("failed to write calendar response")
	}
}

type subscriptionRequest struct {
	Subscription struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	} `json:"subscription"`
}

type subscriptionResponse struct {
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
}

// SubscriptionHandler flips the push subscription state of the calling
// browser: unknown endpoints subscribe, known ones unsubscribe.
func (h *handlers) SubscriptionHandler(res http.ResponseWriter, req *http.Request) {
	var body subscriptionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(res, "invalid subscription payload", http.StatusBadRequest)
		return
	}

	sub := push.Subscription{
		Endpoint: body.Subscription.Endpoint,
		P256dh:   body.Subscription.Keys.P256dh,
		Auth:     body.Subscription.Keys.Auth,
	}
	if sub.Endpoint == "" || sub.P256dh == "" || sub.Auth == "" {
		http.Error(res, "endpoint and keys are required", http.StatusBadRequest)
		return
	}

	op, err := h.subs.Toggle(sub)
	if err != nil {
		log.WithError(err).Error("failed to toggle subscription")
		http.Error(res, "failed to update subscription", http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(subscriptionResponse{Operation: string(op), Success: true}); err != nil {
		log.WithError(err).Error("failed to encode subscription response")
	}
}

func writeScheduleError(res http.ResponseWriter, err error) {
	if errors.Is(err, schedule.ErrRefreshInProgress) {
		http.Error(res, "schedule refresh in progress, retry shortly", http.StatusTooManyRequests)
		return
	}
	log.WithError(err).Error("failed to retrieve schedule")
	http.Error(res, "failed to retrieve schedule", http.StatusInternalServerError)
}
