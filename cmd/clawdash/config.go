package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLogFile = "log-file"

	// Source flags
	FlagURL      = "url"
	FlagTimeout  = "timeout"
	FlagInterval = "interval"
	FlagWatch    = "watch"

	// Display flags
	FlagCategory   = "category"
	FlagTabs       = "tabs"
	FlagTimeLayout = "time-layout"
	FlagMarkdown   = "markdown"

	// Watch command flags
	FlagTUI = "tui"

	// Output format flags
	FlagJSON = "json"
)
