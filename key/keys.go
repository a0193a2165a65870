// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Shikimori service - endpoint and OAuth client registration.
const (
	ShikimoriBaseURL      = "shikimori.base_url"
	ShikimoriClientID     = "shikimori.client_id"
	ShikimoriClientSecret = "shikimori.client_secret"
	ShikimoriRedirectURI  = "shikimori.redirect_uri"
	ShikimoriTimeout      = "shikimori.timeout"
)

// Synchronization behaviour of the CLI around the tracking client.
const (
	SyncQueueFailures = "sync.queue_failures"
	SyncSaveOnFind    = "sync.save_on_find"
)

// Search interaction.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging infrastructure.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored = "cli.colored"
)
