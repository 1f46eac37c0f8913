// Package crawler walks a repository tree and turns its source files into
// extraction records. It owns traversal policy (which directories to skip,
// which extensions count as source); the extraction itself is delegated.
package crawler

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/codebase-genius/ccg/internal/extract"
)

// defaultIgnoreDirs are pruned from every walk.
var defaultIgnoreDirs = []string{".git", "node_modules", "__pycache__", "venv", ".venv", "dist", "build"}

// sourceExtensions selects files worth extracting. Extensions without a
// registered extractor (.ts, .jsx, .tsx) still yield generic records so the
// file tree stays complete.
var sourceExtensions = map[string]bool{
	".py":  true,
	".jac": true,
	".js":  true,
	".rs":  true,
	".ts":  true,
	".jsx": true,
	".tsx": true,
}

// maxConcurrentReads bounds parallel file loads during a crawl.
const maxConcurrentReads = 8

// Crawler scans a directory for source files and extracts one record per
// file. Safe for reuse across repositories.
type Crawler struct {
	engine  *extract.Engine
	ignored map[string]bool
}

// New creates a Crawler around the given engine. extraIgnores are pruned in
// addition to the built-in directory list.
func New(engine *extract.Engine, extraIgnores []string) *Crawler {
	ignored := make(map[string]bool, len(defaultIgnoreDirs)+len(extraIgnores))
	for _, d := range defaultIgnoreDirs {
		ignored[d] = true
	}
	for _, d := range extraIgnores {
		ignored[d] = true
	}
	return &Crawler{engine: engine, ignored: ignored}
}

// Crawl walks root and returns one record per source file, in walk order.
// Files are read and extracted concurrently but the result order follows the
// deterministic directory walk, so downstream graph assembly is reproducible.
// Unreadable files become error records rather than failing the crawl.
func (c *Crawler) Crawl(ctx context.Context, root string) ([]extract.Record, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if c.ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExtensions[filepath.Ext(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]extract.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			relPath, err := filepath.Rel(root, path)
			if err != nil {
				relPath = path
			}
			relPath = filepath.ToSlash(relPath)

			source, err := os.ReadFile(path)
			if err != nil {
				records[i] = &extract.ErrorRecord{FilePath: relPath, Message: err.Error()}
				return nil
			}
			records[i] = c.engine.Extract(relPath, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
