package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// optionWaitTimeout bounds each wait for a dropdown/autocomplete option
	optionWaitTimeout = 5 * time.Second
	// settleDelay gives the page time to reload the team list after the
	// category changes
	settleDelay = 2 * time.Second
	// pollInterval and pollAttempts bound the download wait to ~10s
	pollInterval = 500 * time.Millisecond
	pollAttempts = 20

	categorySelector = "#available-categorie"
	teamSelector     = "#available-teams"
	downloadLabel    = "Scarica Excel"
)

// Browser drives a headless Chrome session through the download flow.
// Every Extract call opens a fresh session and tears it down on exit.
type Browser struct{}

// NewBrowser returns a chromedp-backed extractor.
func NewBrowser() *Browser {
	return &Browser{}
}

// Extract runs the full UI flow and returns the name of the downloaded
// workbook inside p.DownloadDir.
func (b *Browser) Extract(ctx context.Context, p Params) (string, error) {
	if err := os.MkdirAll(p.DownloadDir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating download directory")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	sessionCtx, cancelSession := chromedp.NewContext(allocCtx)
	defer cancelSession()

	if err := chromedp.Run(sessionCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(p.DownloadDir),
	); err != nil {
		return "", errors.Wrap(err, "opening browser session")
	}

	log.WithField("url", p.URL).Debug("navigating to schedule site")
	if err := chromedp.Run(sessionCtx,
		chromedp.Navigate(p.URL),
		chromedp.WaitReady("body"),
		chromedp.WaitVisible(categorySelector, chromedp.ByQuery),
	); err != nil {
		return "", errors.Wrap(err, "navigating to schedule site")
	}

	if err := b.selectCategory(sessionCtx, p.Category); err != nil {
		return "", errors.Wrap(err, "setting category")
	}

	if err := b.selectTeam(sessionCtx, p.Team); err != nil {
		return "", errors.Wrap(err, "setting team")
	}

	if err := b.clickDownload(sessionCtx); err != nil {
		return "", errors.Wrap(err, "requesting workbook download")
	}

	name, err := waitForDownload(sessionCtx, p.DownloadDir, pollInterval, pollAttempts)
	if err != nil {
		return "", errors.Wrap(err, "waiting for workbook download")
	}

	log.WithField("file", name).Debug("workbook downloaded")
	return name, nil
}

// selectCategory opens the category dropdown and picks the option whose
// visible text contains the category label, then lets the page reload
// the team list.
func (b *Browser) selectCategory(ctx context.Context, category string) error {
	option := optionXPath(`li[@role="option"]`, category)

	waitCtx, cancel := optionWaitContext(ctx)
	defer cancel()

	if err := chromedp.Run(waitCtx,
		chromedp.Click(categorySelector, chromedp.ByQuery),
		chromedp.WaitVisible(option, chromedp.BySearch),
		chromedp.Click(option, chromedp.BySearch),
	); err != nil {
		return err
	}

	// the settle runs on the session context, outside the bounded wait
	return chromedp.Run(ctx, chromedp.Sleep(settleDelay))
}

// selectTeam waits for the team control to come back after the category
// reload, types the team name into the autocomplete and picks the
// matching suggestion.
func (b *Browser) selectTeam(ctx context.Context, team string) error {
	option := optionXPath(`li[contains(@class,"MuiAutocomplete-option")]`, team)

	waitCtx, cancel := optionWaitContext(ctx)
	defer cancel()

	return chromedp.Run(waitCtx,
		chromedp.WaitVisible(teamSelector, chromedp.ByQuery),
		chromedp.SendKeys(teamSelector, team, chromedp.ByQuery),
		chromedp.WaitVisible(option, chromedp.BySearch),
		chromedp.Click(option, chromedp.BySearch),
	)
}

func (b *Browser) clickDownload(ctx context.Context) error {
	button := fmt.Sprintf(`//button[contains(., %q)]`, downloadLabel)

	waitCtx, cancel := optionWaitContext(ctx)
	defer cancel()

	return chromedp.Run(waitCtx,
		chromedp.WaitVisible(button, chromedp.BySearch),
		chromedp.Click(button, chromedp.BySearch),
	)
}

// optionWaitContext bounds one UI wait phase at optionWaitTimeout. The
// settle delay never shares this budget, so a slow option list gets
// the full timeout.
func optionWaitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, optionWaitTimeout)
}

func optionXPath(node, text string) string {
	return fmt.Sprintf(`//%s[contains(., %q)]`, node, text)
}

// waitForDownload polls dir until a non-empty workbook shows up,
// returning its file name. Hidden files and partial downloads
// (zero-size or .crdownload) are ignored.
func waitForDownload(ctx context.Context, dir string, interval time.Duration, attempts uint64) (string, error) {
	var name string

	find := func() error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "reading download directory"))
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if !strings.HasSuffix(entry.Name(), ".xlsx") {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Size() == 0 {
				continue
			}
			name = entry.Name()
			return nil
		}
		return errors.New("no workbook in download directory yet")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), attempts),
		ctx,
	)
	if err := backoff.Retry(find, policy); err != nil {
		return "", err
	}
	return name, nil
}
