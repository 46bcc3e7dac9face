package host

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// LinkFor returns the https URL a node label points at, or "" for labels
// that are not host names
func LinkFor(label string) string {
	label = strings.TrimSpace(label)
	if label == "" || strings.ContainsAny(label, " \t\n") {
		return ""
	}
	u, err := url.Parse("https://" + label)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.String()
}

// openBrowser starts the system browser on target without waiting for it
func openBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	go cmd.Wait()
	return nil
}
