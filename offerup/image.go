package offerup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscoreRuns       = regexp.MustCompile(`_+`)
)

// SanitizeFilename strips characters that are invalid on common
// filesystems, replaces spaces with underscores, collapses underscore runs,
// and truncates to maxLength runes.
func SanitizeFilename(name string, maxLength int) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, " ", "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	if r := []rune(name); len(r) > maxLength {
		name = string(r[:maxLength])
	}
	return strings.Trim(name, "_")
}

// downloadImage streams imageURL into dir/filename and returns the written
// path. The file and response body are closed on every path; an interrupted
// download may leave a partial file behind.
func (s *Scraper) downloadImage(ctx context.Context, imageURL, dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create image directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	res, err := s.imageClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("image request returned %s", res.Status)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, res.Body); err != nil {
		return "", err
	}
	return path, nil
}
