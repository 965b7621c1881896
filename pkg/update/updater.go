package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/soxofaan/jsonfold/pkg/version"
)

const (
	GitHubOwner = "soxofaan"
	GitHubRepo  = "jsonfold"
)

// ErrNoRelease is returned when the repository has no matching release
var ErrNoRelease = errors.New("no matching release found")

// Info describes the installed and the available version
type Info struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseNotes   string
	UpdateNeeded   bool
}

// Options controls Update
type Options struct {
	Force         bool
	TargetVersion string
	Timeout       time.Duration
}

// releaseSource is the part of selfupdate.Updater the updater relies on
type releaseSource interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
	DetectVersion(ctx context.Context, repository selfupdate.Repository, version string) (*selfupdate.Release, bool, error)
	UpdateTo(ctx context.Context, rel *selfupdate.Release, cmdPath string) error
}

// Updater replaces the running binary with a GitHub release
type Updater struct {
	source     releaseSource
	repository selfupdate.Repository
}

// NewUpdater creates an updater validating downloads against checksums.txt
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
		source:     updater,
		repository: selfupdate.NewRepositorySlug(GitHubOwner, GitHubRepo),
	}, nil
}

// NeedsUpdate reports whether latest is newer than current. Development builds and
// versions that are not valid semver always need an update.
func NeedsUpdate(current, latest string) (bool, error) {
	latestVersion, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("invalid latest version %s: %w", latest, err)
	}
	if current == "" || current == "dev" {
		return true, nil
	}
	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return true, nil
	}
	return latestVersion.GreaterThan(currentVersion), nil
}

// CheckForUpdates compares the running version with the latest release
func (u *Updater) CheckForUpdates(ctx context.Context) (*Info, error) {
	latest, err := u.detect(ctx, "")
	if err != nil {
		return nil, err
	}
	return u.info(latest)
}

// Update installs the latest (or the requested) release over the running executable
func (u *Updater) Update(ctx context.Context, opts Options) (*Info, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	release, err := u.detect(ctx, opts.TargetVersion)
	if err != nil {
		return nil, err
	}
	info, err := u.info(release)
	if err != nil {
		return nil, err
	}
	if !info.UpdateNeeded && !opts.Force && opts.TargetVersion == "" {
		return info, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return info, fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := u.source.UpdateTo(ctx, release, exe); err != nil {
		return info, fmt.Errorf("update to version %s failed: %w", release.Version(), err)
	}
	return info, nil
}

func (u *Updater) detect(ctx context.Context, target string) (*selfupdate.Release, error) {
	var (
		release *selfupdate.Release
		found   bool
		err     error
	)
	if target == "" {
		release, found, err = u.source.DetectLatest(ctx, u.repository)
	} else {
		release, found, err = u.source.DetectVersion(ctx, u.repository, target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to detect releases: %w", err)
	}
	if !found {
		return nil, ErrNoRelease
	}
	return release, nil
}

func (u *Updater) info(release *selfupdate.Release) (*Info, error) {
	current := version.GetVersion()
	needed, err := NeedsUpdate(current, release.Version())
	if err != nil {
		return nil, err
	}
	return &Info{
		CurrentVersion: current,
		LatestVersion:  release.Version(),
		ReleaseNotes:   release.ReleaseNotes,
		UpdateNeeded:   needed,
	}, nil
}
