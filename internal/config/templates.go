package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# ICT Journal Configuration

[database]
# Path to the SQLite database file
# path = "~/.config/ict-journal/journal.db"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Also log to the terminal
console = false
# Log to a rotated file
file = true

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
# Time format
time_format = "15:04:05"

[market]
# Symbols shown by default in the circuit-band calculator
assets = ["XAUUSD", "BTCUSD", "SOLUSD", "ETHUSD", "USOIL", "NAS100", "SPX500", "US30", "XRPUSD"]
# CME index symbols for settlement limit bands
indices = ["NAS100", "SPX500", "US30"]

[macro]
# Fixed reference zone for macro wall-clock times
timezone = "America/New_York"
# How many upcoming macros the countdown shows
upcoming = 5
`

// writeTemplate writes a commented config template on first run so the
// user has something to edit.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
