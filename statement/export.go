package statement

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MIME is the media type of saved statements.
const MIME = "application/pdf"

// Exporter saves rendered statements under a documents directory.
type Exporter struct {
	Dir     string // documents directory, statements go to Dir/Hisab
	Options Options
	Workers int // concurrent renders in SaveAll, 0 means unbounded
	Log     *zap.Logger
	Now     func() time.Time
}

func (e *Exporter) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// FileName returns the name a statement of customer name is saved under.
func FileName(name string, at time.Time) string { return fileName(name, at, 1) }

// maxCollisions bounds the suffixes tried for statements saved under the
// same name in the same millisecond.
const maxCollisions = 100

// fileName is FileName with a "_n" suffix for the nth statement of the same
// name and instant.
func fileName(name string, at time.Time, n int) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	base := "Hisab_" + clean + "_" + strconv.FormatInt(at.UnixMilli(), 10)
	if n > 1 {
		base += "_" + strconv.Itoa(n)
	}
	return base + ".pdf"
}

// Save renders s into a new file and returns its path. The file only
// appears once it is complete: on failure Save returns "" and the error.
func (e *Exporter) Save(ctx context.Context, s *Statement) (string, error) {
	path, err := e.save(ctx, s)
	if err != nil {
		e.logger().Error("statement export failed",
			zap.String("customer", s.Customer.Name),
			zap.Error(err),
		)
		return "", err
	}
	e.logger().Info("statement saved",
		zap.String("customer", s.Customer.Name),
		zap.String("path", path),
		zap.Int("rows", len(s.Rows)),
	)
	return path, nil
}

func (e *Exporter) save(ctx context.Context, s *Statement) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(e.Dir, "Hisab")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".statement-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Render(tmp, s, e.Options); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return publish(tmp.Name(), dir, s.Customer.Name, e.now())
}

// publish links the complete temp file under the first free statement name.
// Linking never replaces an existing file, so concurrent saves of customers
// sharing a name all keep their statement.
func publish(tmp, dir, name string, at time.Time) (string, error) {
	for n := 1; ; n++ {
		path := filepath.Join(dir, fileName(name, at, n))
		err := os.Link(tmp, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) || n >= maxCollisions {
			return "", fmt.Errorf("save statement: %w", err)
		}
	}
}

// SaveAll saves every statement concurrently. Paths are returned in the
// order of stmts. The first failure cancels the remaining renders.
func (e *Exporter) SaveAll(ctx context.Context, stmts []*Statement) ([]string, error) {
	paths := make([]string, len(stmts))
	g, gCtx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, s := range stmts {
		g.Go(func() error {
			p, err := e.Save(gCtx, s)
			if err != nil {
				return fmt.Errorf("statement of %q: %w", s.Customer.Name, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Result is the outcome of a background save.
type Result struct {
	Path string
	Err  error
}

// Start saves s in the background. The channel receives exactly one Result
// and is buffered, so the caller may stop listening.
func (e *Exporter) Start(ctx context.Context, s *Statement) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		p, err := e.Save(ctx, s)
		ch <- Result{Path: p, Err: err}
	}()
	return ch
}
