package player

import (
	"fmt"
	"os/exec"
)

// MpvInstallURL is where users are sent when mpv is missing.
const MpvInstallURL = "https://mpv.io/installation/"

var lookPath = exec.LookPath

// DependencyError reports a missing external binary.
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckMpv checks that mpv is on PATH and returns its location.
func CheckMpv() (string, error) {
	path, err := lookPath("mpv")
	if err != nil {
		return "", &DependencyError{Name: "mpv", InstallURL: MpvInstallURL}
	}
	return path, nil
}
