package version

import (
	"fmt"
	"mapgen-server/internal/infrastructure/storage"
	"time"
)

// Заполняются через -ldflags "-X mapgen-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// FormatVersion - версия формата .bspm, который пишет эта сборка
const FormatVersion = int(storage.Version1)

var buildEpoch = time.Date(
	2026, time.January, 1,
	0, 0, 0, 0,
	time.UTC,
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildID       int    `json:"buildId"`
	BuildDate     string `json:"buildDate,omitempty"`
	Commit        string `json:"commit,omitempty"`
	Branch        string `json:"branch,omitempty"`
	FormatVersion int    `json:"formatVersion"`
	Calculated    bool   `json:"calculated"`
	Error         string `json:"error,omitempty"`
}

// CalculateBuildID returns the number of days between the epoch and BuildDate.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info returns structured version information.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate:     BuildDate,
		Commit:        BuildCommit,
		Branch:        BuildBranch,
		FormatVersion: FormatVersion,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// Short returns "b<id>" or "dev" when the build date is unknown.
func Short() string {
	info := Info()
	if !info.Calculated {
		return "dev"
	}
	return fmt.Sprintf("b%d", info.BuildID)
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("mapgen dev build, format v%d (%s)", info.FormatVersion, info.Error)
	}

	return fmt.Sprintf(
		"mapgen build %d (%s) commit[%s] branch[%s] format v%d",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		info.FormatVersion,
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
