// Package logging configures the process-wide zap logger shared by the
// jinni CLI and tool-server front-ends.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance.
var Logger *zap.Logger = zap.NewNop()

// Setup builds a production or development zap logger, tags it with
// appName/appVersion fields, installs it as the global logger, and
// returns it so callers can inject it into the engine directly.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	built, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = built
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
