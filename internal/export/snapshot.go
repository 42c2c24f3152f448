// Package export writes still frames of a session to image files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/bezdyn/internal/session"
)

const snapshotPrefix = "bezier-snapshot-"

// SnapshotName is the default file name for a snapshot taken at t. ext
// includes the dot.
func SnapshotName(t time.Time, ext string) string {
	return fmt.Sprintf("%s%d%s", snapshotPrefix, t.UnixMilli(), ext)
}

// Snapshot renders the current frame of s into dir. The format follows the
// extension of name, PNG when name is empty. The session is not advanced.
func Snapshot(s *session.Session, dir, name string) (string, error) {
	if name == "" {
		name = SnapshotName(time.Now(), ".png")
	}
	path := filepath.Join(dir, name)
	p := s.Params()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		surface := NewSVGSurface(p.Width, p.Height)
		s.Snapshot(surface)
		if err := os.WriteFile(path, []byte(surface.String()), 0o644); err != nil {
			return "", fmt.Errorf("export: write %s: %w", path, err)
		}
	case ".png":
		surface, err := NewPNGSurface(int(p.Width), int(p.Height))
		if err != nil {
			return "", err
		}
		s.Snapshot(surface)
		if err := surface.SavePNG(path); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("export: unsupported snapshot format %q", filepath.Ext(name))
	}
	return path, nil
}
