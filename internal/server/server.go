// Package server exposes the cached schedule over HTTP: the snapshot as
// JSON, the calendar export, and the push subscription toggle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"volley-schedule-service/internal/push"
	"volley-schedule-service/internal/schedule"
	"volley-schedule-service/internal/subscription"
)

// Schedule is the slice of the refresh coordinator the handlers need.
type Schedule interface {
	GetSchedule(ctx context.Context) (*schedule.Snapshot, error)
}

// Subscriptions toggles a browser's push subscription state.
type Subscriptions interface {
	Toggle(sub push.Subscription) (subscription.Operation, error)
}

// Server serves the schedule API.
type Server struct {
	addr     string
	handlers *handlers
}

// New creates a server listening on addr.
func New(addr string, sched Schedule, subs Subscriptions) *Server {
	return &Server{
		addr:     addr,
		handlers: newHandlers(sched, subs),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/schedule", s.handlers.ScheduleHandler).Methods("GET")
	r.HandleFunc("/api/calendar", s.handlers.CalendarHandler).Methods("GET")
	r.HandleFunc("/api/subscription", s.handlers.SubscriptionHandler).Methods("POST")
	return r
}

// ListenAndServe blocks serving requests until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Infof("http server listening on: http://%s", addrString(s.addr))
	return http.ListenAndServe(s.addr, s.Router())
}

func addrString(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return fmt.Sprintf("0.0.0.0%s", addr)
	}
	return addr
}
