// Package config loads the service configuration from environment
// variables. Every pipeline value is required; missing variables are
// reported together so operators can fix them in one pass.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Environment variable names.
const (
	envSiteURL         = "URL_DOWNLOAD_SITE"
	envCategory        = "CATEGORY"
	envTeam            = "TEAM"
	envHomeVenue       = "HOME_PLACE"
	envDownloadDir     = "DOWNLOAD_PATH"
	envDatabasePath    = "DATABASE_PATH"
	envListenAddr      = "LISTEN_ADDR"
	envVAPIDPublicKey  = "VAPID_PUBLIC_KEY"
	envVAPIDPrivateKey = "VAPID_PRIVATE_KEY"
	envVAPIDSubject    = "VAPID_SUBJECT"
)

const defaultListenAddr = ":8080"

// Config holds everything the pipeline and its collaborators need.
type Config struct {
	// SiteURL is the schedule page of the federation site
	SiteURL string
	// Category is the visible label of the category to select
	Category string
	// Team is the team name typed into the site's filter
	Team string
	// HomeVenue is the normalized venue string marking home matches
	HomeVenue string
	// DownloadDir is the scratch directory for downloaded workbooks
	DownloadDir string
	// DatabasePath is the SQLite file holding push subscriptions
	DatabasePath string
	// ListenAddr is the HTTP listen address
	ListenAddr string
	// VAPID credentials for Web Push delivery
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	// VAPIDSubject is the contact URI announced to push services
	VAPIDSubject string
}

// Load reads the configuration from the environment. All values except
// the listen address are required; the returned error lists every
// missing variable at once.
func Load() (Config, error) {
	var missing []string
	require := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	cfg := Config{
		SiteURL:         require(envSiteURL),
		Category:        require(envCategory),
		Team:            require(envTeam),
		HomeVenue:       require(envHomeVenue),
		DownloadDir:     require(envDownloadDir),
		DatabasePath:    require(envDatabasePath),
		ListenAddr:      envOrDefault(envListenAddr, defaultListenAddr),
		VAPIDPublicKey:  require(envVAPIDPublicKey),
		VAPIDPrivateKey: require(envVAPIDPrivateKey),
		VAPIDSubject:    require(envVAPIDSubject),
	}

	if len(missing) > 0 {
		return Config{}, errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
