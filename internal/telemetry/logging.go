package telemetry

import (
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
)

// SetupLogging configures every named logger. format is one of color, plaintext or json.
func SetupLogging(level, format string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	var f logging.LogFormat
	switch strings.ToLower(format) {
	case "", "color":
		f = logging.ColorizedOutput
	case "plaintext", "text":
		f = logging.PlaintextOutput
	case "json":
		f = logging.JSONOutput
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	logging.SetupLogging(logging.Config{
		Format: f,
		Level:  lvl,
		Stderr: true,
	})
	return nil
}
