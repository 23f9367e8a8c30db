package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogSourceName    = "sourceName"
	LogFeedURL       = "feedURL"
	LogRelayURL      = "relayURL"
	LogArticleCount  = "articleCount"
	LogSymbol        = "symbol"
	LogProvider      = "provider"
	LogStatusCode    = "statusCode"
	LogAttempt       = "attempt"
	LogInterval      = "interval"
	LogLevelFallback = zerolog.InfoLevel
)
