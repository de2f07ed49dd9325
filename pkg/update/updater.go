// Package update implements self-updating from GitHub releases with
// checksum validation.
package update

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"

	"github.com/nlsh-dev/nlsh/pkg/version"
)

const (
	// GitHub repository for releases
	GitHubOwner = "nlsh-dev"
	GitHubRepo  = "nlsh"
)

// UpdateInfo contains information about an available update
type UpdateInfo struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseNotes   string
	DownloadURL    string
	UpdateNeeded   bool
}

// Updater handles self-updating logic
type Updater struct {
	updater    *selfupdate.Updater
	repository selfupdate.Repository
}

// NewUpdater creates a new updater instance
func NewUpdater() (*Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return &Updater{
		updater:    updater,
		repository: selfupdate.NewRepositorySlug(GitHubOwner, GitHubRepo),
	}, nil
}

// CheckForUpdates checks if there's a newer version available
func (u *Updater) CheckForUpdates(ctx context.Context) (*UpdateInfo, error) {
	currentVersion := version.GetVersion()

	latest, found, err := u.updater.DetectLatest(ctx, u.repository)
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no releases found")
	}

	latestVersion := latest.Version()

	return &UpdateInfo{
		CurrentVersion: currentVersion,
		LatestVersion:  latestVersion,
		ReleaseNotes:   latest.ReleaseNotes,
		DownloadURL:    latest.AssetURL,
		UpdateNeeded:   updateNeeded(currentVersion, latestVersion),
	}, nil
}

// updateNeeded compares versions using semver. Development builds always
// report an available update.
func updateNeeded(currentVersion, latestVersion string) bool {
	if currentVersion == "dev" || currentVersion == "development" || currentVersion == "" {
		return true
	}
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return true
	}
	latest, err := semver.NewVersion(latestVersion)
	if err != nil {
		return false
	}
	return latest.GreaterThan(current)
}

// UpdateToLatest replaces the running binary with the latest release.
func (u *Updater) UpdateToLatest(ctx context.Context) error {
	latest, found, err := u.updater.DetectLatest(ctx, u.repository)
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no releases found")
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := u.updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

// UpdateOptions contains options for update operations
type UpdateOptions struct {
	Force   bool          // Force update even if no newer version
	Timeout time.Duration // Timeout for update operation
}

// UpdateWithOptions checks for an update and applies it when one is needed
// or the update is forced.
func (u *Updater) UpdateWithOptions(ctx context.Context, opts UpdateOptions) (*UpdateInfo, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	updateInfo, err := u.CheckForUpdates(ctx)
	if err != nil {
		return nil, err
	}

	if !updateInfo.UpdateNeeded && !opts.Force {
		return updateInfo, nil
	}

	if err := u.UpdateToLatest(ctx); err != nil {
		return updateInfo, err
	}
	return updateInfo, nil
}
