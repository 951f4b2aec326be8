package codefence

import (
	"os"
	"strings"
)

// DetectColor returns true if the environment likely renders ANSI colors.
// NO_COLOR wins over everything, CLICOLOR_FORCE over terminal hints.
func DetectColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" {
		return false
	}
	if os.Getenv("COLORTERM") != "" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	for _, hint := range []string{"color", "xterm", "kitty", "screen", "tmux", "vt100", "ansi"} {
		if strings.Contains(term, hint) {
			return true
		}
	}
	return false
}
