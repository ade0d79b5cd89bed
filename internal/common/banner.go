package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	writeBanner(os.Stderr, config)

	logger.Info().
		Str("version", GetVersion()).
		Str("build", GetBuild()).
		Str("commit", GetGitCommit()).
		Str("environment", config.Environment).
		Str("service_url", serviceURL(config)).
		Bool("cache_warmer", config.Scheduler.Enabled).
		Msg("Application started")
}

func serviceURL(config *Config) string {
	return fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
}

func writeBanner(w io.Writer, config *Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` __  __            _        _   _`,
		`|  \/  | __ _ _ __| | _____| |_| |    ___ _ __  ___`,
		`| |\/| |/ _' | '__| |/ / _ \ __| |   / _ \ '_ \/ __|`,
		`| |  | | (_| | |  |   <  __/ |_| |__|  __/ | | \__ \`,
		`|_|  |_|\__,_|_|  |_|\_\___|\__|_____\___|_| |_|___/`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Markets, Fundamentals & Plain-English Analysis%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	warm := "on"
	if !config.Scheduler.Enabled {
		warm = "off"
	}

	kvPad := 16
	kvLines := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Environment", config.Environment},
		{"Service URL", serviceURL(config)},
		{"Cache Warmer", warm},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
}

// PrintShutdownBanner displays the application shutdown banner to stderr.
func PrintShutdownBanner(logger *Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 42
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	fmt.Fprintf(os.Stderr, "\n%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  MARKETLENS — SHUTTING DOWN%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
