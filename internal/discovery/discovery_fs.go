package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
	"golang.org/x/sync/errgroup"
)

// schemaExtensions are the file extensions picked up when walking directories.
var schemaExtensions = map[string]bool{
	".graphql":  true,
	".graphqls": true,
	".gql":      true,
}

// IsSchemaFile reports whether path has a schema file extension.
func IsSchemaFile(path string) bool { return schemaExtensions[filepath.Ext(path)] }

// FileSystemDiscovery reads schema files from a list of files and directories.
// Directories are walked recursively.
type FileSystemDiscovery struct {
	paths   []string
	exclude map[string]bool
	workers int
}

func NewFileSystemDiscovery(paths ...string) *FileSystemDiscovery {
	return &FileSystemDiscovery{paths: paths, exclude: make(map[string]bool), workers: 8}
}

// Exclude skips the given files, typically the output of a previous run.
func (d *FileSystemDiscovery) Exclude(paths ...string) *FileSystemDiscovery {
	for _, p := range paths {
		if p != "" {
			d.exclude[absPath(p)] = true
		}
	}
	return d
}

// Excluded reports whether path was excluded.
func (d *FileSystemDiscovery) Excluded(path string) bool { return d.exclude[absPath(path)] }

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Files lists the schema files in a stable order: the order paths were given,
// each directory's files sorted lexically. Explicitly listed files are kept
// whatever their extension.
func (d *FileSystemDiscovery) Files() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] && !d.Excluded(p) {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range d.paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && IsSchemaFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %q: %w", root, err)
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return files, nil
}

// Dirs returns the directory roots followed by the directories holding the
// discovered files, for watching.
func (d *FileSystemDiscovery) Dirs() ([]string, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, root := range d.paths {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			add(filepath.Clean(root))
		}
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}
	return dirs, nil
}

// Sources reads every discovered file concurrently, preserving file order.
func (d *FileSystemDiscovery) Sources(ctx context.Context) ([]*language.Source, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]*language.Source, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.workers)
	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read schema %q: %w", path, err)
			}
			sources[i] = language.NewSource(path, string(content))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}
