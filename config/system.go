package config

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// AppName is used for the binary, the config file name and directories
const AppName = "tagfilter"

// Build information, set via -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GenerateRunID generates an 8-character random alphanumeric ID (lowercase)
// used to correlate a selection report with its log lines
func GenerateRunID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "run00000"
	}
	return id
}
