package updater

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/twilio-labs/create-twilio-function/internal/branding"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
)

// Notify prints an update banner to w when a newer release is known. A
// stale cache is refreshed first, bounded by ctx. Development builds and
// every lookup failure are silent.
func (u *Updater) Notify(ctx context.Context, w io.Writer, cacheDir string) {
	if _, err := parseSemver(u.currentVersion); err != nil {
		return
	}

	cache, err := LoadCache(u.fs, cacheDir)
	if err != nil {
		logging.Debug().Err(err).Msg("ignoring unreadable version cache")
		cache = nil
	}

	// A cache written by another version says nothing about this one.
	if cache != nil && cache.CurrentVersion != u.currentVersion {
		cache = nil
	}

	if IsCacheStale(cache, u.maxAge) {
		if fresh, err := u.refresh(ctx, cacheDir); err != nil {
			logging.Debug().Err(err).Msg("release check failed")
		} else {
			cache = fresh
		}
	}

	if cache != nil && cache.UpdateAvailable {
		PrintUpdateBanner(w, cache.CurrentVersion, cache.LatestVersion, cache.ReleaseURL)
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, current, latest, url string) {
	fmt.Fprintf(w, "\nUpdate available for %s: %s -> %s\n", branding.CLIName(), current, latest)
	if url != "" {
		fmt.Fprintf(w, "    %s\n", url)
	}
	fmt.Fprintln(w)
}

func (u *Updater) refresh(ctx context.Context, cacheDir string) (*VersionCache, error) {
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return nil, err
	}

	cache := &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	}
	if err := SaveCache(u.fs, cacheDir, cache); err != nil {
		logging.Debug().Err(err).Msg("could not save version cache")
	}
	return cache, nil
}
