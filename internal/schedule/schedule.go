// Package schedule serves the freshest affordable snapshot of the
// league schedule.
//
// A single cache slot holds the last successful refresh for 12 hours.
// At most one extract-and-parse cycle runs at a time: a second caller
// hitting an expired cache while a cycle is in flight is rejected with
// ErrRefreshInProgress instead of queueing, and retries later. A failed
// cycle never touches the previously cached snapshot.
package schedule

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"volley-schedule-service/internal/extractor"
	"volley-schedule-service/internal/match"
	"volley-schedule-service/internal/reminder"
)

// DefaultTTL is how long a cached snapshot stays fresh.
const DefaultTTL = 12 * time.Hour

// ErrRefreshInProgress is returned when a refresh cycle is already
// running. Callers should retry shortly; nothing is broken.
var ErrRefreshInProgress = errors.New("schedule refresh already in progress, retry shortly")

// Snapshot is one cached refresh result. It is replaced atomically and
// never mutated, so callers may hold it as long as they like.
type Snapshot struct {
	Matches    []match.Match `json:"matches"`
	LastUpdate string        `json:"lastUpdate"`
	Team       string        `json:"team"`
	Category   string        `json:"category"`
}

// Parser turns a downloaded workbook into matches.
type Parser interface {
	Parse(path string) ([]match.Match, error)
}

// Reminder is triggered asynchronously after each successful refresh.
type Reminder interface {
	Dispatch(matches []match.Match) (reminder.Result, error)
}

// Config carries the refresh cycle parameters.
type Config struct {
	URL         string
	Category    string
	Team        string
	DownloadDir string
	// TTL overrides DefaultTTL when positive
	TTL time.Duration
}

// Service is the refresh coordinator. It owns the cache slot and the
// in-flight flag; one Service guards one (category, team) schedule.
type Service struct {
	cfg       Config
	extractor extractor.Extractor
	parser    Parser
	reminder  Reminder

	mu         sync.Mutex
	snapshot   *Snapshot
	capturedAt time.Time
	refreshing bool

	now func() time.Time
}

// New creates a coordinator around the given extractor and parser.
// rem may be nil to disable reminder dispatch.
func New(cfg Config, ext extractor.Extractor, parser Parser, rem Reminder) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Service{
		cfg:       cfg,
		extractor: ext,
		parser:    parser,
		reminder:  rem,
		now:       time.Now,
	}
}

// GetSchedule returns the cached snapshot when it is younger than the
// TTL, otherwise runs a refresh cycle. A concurrent refresh attempt
// fails fast with ErrRefreshInProgress; any other failure is fatal to
// the cycle only and leaves the previous snapshot untouched.
func (s *Service) GetSchedule(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	if s.snapshot != nil && s.now().Sub(s.capturedAt) < s.cfg.TTL {
		snap := s.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	if s.refreshing {
		s.mu.Unlock()
		return nil, ErrRefreshInProgress
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	matches, err := s.refresh(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refreshing schedule")
	}

	capturedAt := s.now()
	snap := &Snapshot{
		Matches:    matches,
		LastUpdate: capturedAt.Format(time.RFC3339),
		Team:       s.cfg.Team,
		Category:   s.cfg.Category,
	}

	s.mu.Lock()
	s.snapshot = snap
	s.capturedAt = capturedAt
	s.mu.Unlock()

	go s.dispatchReminder(snap.Matches)

	return snap, nil
}

// refresh runs one extract-and-parse cycle and returns the sorted
// matches.
func (s *Service) refresh(ctx context.Context) ([]match.Match, error) {
	log.WithFields(log.Fields{
		"category": s.cfg.Category,
		"team":     s.cfg.Team,
	}).Info("refreshing schedule from source site")

	name, err := s.extractor.Extract(ctx, extractor.Params{
		URL:         s.cfg.URL,
		Category:    s.cfg.Category,
		Team:        s.cfg.Team,
		DownloadDir: s.cfg.DownloadDir,
	})
	if err != nil {
		return nil, err
	}

	matches, err := s.parser.Parse(filepath.Join(s.cfg.DownloadDir, name))
	if err != nil {
		return nil, err
	}

	match.SortByStatus(matches)
	log.WithField("matches", len(matches)).Info("schedule refreshed")
	return matches, nil
}

// dispatchReminder triggers the weekly reminder. Dispatch failures are
// logged and swallowed so they never fail the refresh that triggered
// them.
func (s *Service) dispatchReminder(matches []match.Match) {
	if s.reminder == nil {
		return
	}

	res, err := s.reminder.Dispatch(matches)
	if err != nil {
		log.WithError(err).Warn("weekly reminder dispatch failed")
		return
	}
	if !res.Sent {
		log.WithField("reason", res.Reason).Debug("weekly reminder skipped")
		return
	}
	log.WithField("matches", res.Count).Info("weekly reminder sent")
}
