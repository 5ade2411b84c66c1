package archive

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Extract writes entry name of src to dest, creating parent directories.
func Extract(src Source, name, dest string) error {
	data, err := src.ReadFile(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// ExtractTree extracts every listed entry under prefix into destDir,
// preserving the relative layout. It returns the entries written.
func ExtractTree(a Archive, prefix, destDir string) ([]string, error) {
	names, err := a.List()
	if err != nil {
		return nil, err
	}

	want := NormalizePath(prefix)
	if want != "" && !strings.HasSuffix(want, "/") {
		want += "/"
	}

	var written []string
	for _, n := range names {
		if !strings.HasPrefix(NormalizePath(n), want) {
			continue
		}
		rel := filepath.FromSlash(strings.ReplaceAll(n, `\`, "/"))
		if !filepath.IsLocal(rel) {
			return written, fmt.Errorf("%w: %s", ErrUnsafePath, n)
		}
		dest := filepath.Join(destDir, rel)
		if err := Extract(a, n, dest); err != nil {
			return written, err
		}
		written = append(written, n)
	}
	return written, nil
}

// Search returns the listed entries whose normalized name matches pattern.
// A pattern with glob metacharacters is matched with path.Match against the
// whole name; anything else is a substring match.
func Search(a Archive, pattern string) ([]string, error) {
	names, err := a.List()
	if err != nil {
		return nil, err
	}

	p := NormalizePath(pattern)
	glob := strings.ContainsAny(p, "*?[")
	if glob {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}

	var out []string
	for _, n := range names {
		key := NormalizePath(n)
		var ok bool
		if glob {
			ok, _ = path.Match(p, key)
		} else {
			ok = strings.Contains(key, p)
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
