package config

import (
	"time"

	"bikeshare/pkg/contracts"
)

// Application constants
const (
	// Application Info
	AppName    = "Bikeshare Explorer"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. BIKESHARE_SERVER_PORT
	EnvPrefix = "BIKESHARE"

	// Filter vocabulary
	FilterAll = "all"

	// Rows shown per pagination step
	PageSize = 5

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Timeouts
	DefaultRequestTimeout = 30 * time.Second

	// File Paths
	DefaultDataDir = "data"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath     = "/api/v1"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)

// YesAnswers are the answers taken as "yes" by the interactive session,
// compared after trimming and lower-casing. Anything else counts as "no".
var YesAnswers = []string{"yes"}
