// Package loader downloads and installs DivaModLoader into a game directory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"TUI-M4-Manager/game"

	"github.com/bodgit/sevenzip"
	"github.com/cavaliergopher/grab/v3"
	"github.com/charmbracelet/log"
)

// DefaultReleaseURL points at the latest DivaModLoader release archive.
const DefaultReleaseURL = "https://github.com/blueskythlikesclouds/DivaModLoader/releases/latest/download/DivaModLoader.7z"

const progressInterval = 200 * time.Millisecond

// Phase of an install.
type Phase int

const (
	PhaseDownloading Phase = iota
	PhaseExtracting
	PhaseDone
)

// Progress is reported while an install runs.
type Progress struct {
	Phase   Phase
	Current int64
	Total   int64   // -1 when the server did not send a size
	Speed   float64 // Bytes per second, downloading only
}

// Fraction returns progress in the range 0..1, or 0 when the total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total)
}

// ErrNotInstalled is returned when extraction finished but the loader library is still missing.
var ErrNotInstalled = errors.New("mod loader library missing after install")

// Installer fetches the loader archive from URL.
type Installer struct {
	URL    string
	Client *grab.Client
}

// NewInstaller returns an Installer for the official release.
func NewInstaller() *Installer {
	return &Installer{URL: DefaultReleaseURL, Client: grab.NewClient()}
}

// Install downloads the release archive and extracts it into gameDir.
// progress may be nil.
func (in *Installer) Install(ctx context.Context, gameDir string, progress func(Progress)) error {
	if !game.IsValidInstallDir(gameDir) {
		return fmt.Errorf("not a game directory: %s", gameDir)
	}
	if progress == nil {
		progress = func(Progress) {}
	}

	tmpDir, err := os.MkdirTemp("", "m4-loader-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archive, err := in.download(ctx, tmpDir, progress)
	if err != nil {
		return err
	}

	if err := extract(ctx, archive, gameDir, progress); err != nil {
		return err
	}

	if !game.HasModLoaderInstalled(gameDir) {
		return ErrNotInstalled
	}

	progress(Progress{Phase: PhaseDone, Current: 1, Total: 1})
	log.Info("mod loader installed", "dir", gameDir)
	return nil
}

func (in *Installer) download(ctx context.Context, dstDir string, progress func(Progress)) (string, error) {
	req, err := grab.NewRequest(dstDir, in.URL)
	if err != nil {
		return "", fmt.Errorf("invalid loader url %s: %w", in.URL, err)
	}
	req = req.WithContext(ctx)

	client := in.Client
	if client == nil {
		client = grab.NewClient()
	}

	log.Debug("downloading mod loader", "url", in.URL)
	resp := client.Do(req)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			progress(Progress{
				Phase:   PhaseDownloading,
				Current: resp.BytesComplete(),
				Total:   resp.Size(),
				Speed:   resp.BytesPerSecond(),
			})
		case <-resp.Done:
			break loop
		}
	}

	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("failed to download mod loader: %w", err)
	}
	return resp.Filename, nil
}

func extract(ctx context.Context, archive, destDir string, progress func(Progress)) error {
	r, err := sevenzip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open loader archive: %w", err)
	}
	defer r.Close()

	total := int64(len(r.File))
	for i, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		// Keep the user's loader config (it names their mods folder)
		if strings.EqualFold(filepath.Base(target), "config.toml") && filepath.Dir(target) == filepath.Clean(destDir) {
			if _, err := os.Stat(target); err == nil {
				log.Debug("keeping existing loader config", "path", target)
				continue
			}
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
		progress(Progress{Phase: PhaseExtracting, Current: int64(i + 1), Total: total})
	}
	return nil
}

func extractFile(f *sevenzip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", target, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto destDir, rejecting entries that escape it.
func safeJoin(destDir, name string) (string, error) {
	cleanDest := filepath.Clean(destDir)
	target := filepath.Join(cleanDest, filepath.FromSlash(name))
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}
