package redirects

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Writes arrive as truncate + write, reading before the burst settles sees a partial file.
const RELOAD_DEBOUNCE = 50 * time.Millisecond

// Redirector serves the current table and lets a watcher swap it while requests run.
type Redirector struct {
	table  atomic.Pointer[Table]
	logger *zap.Logger
}

func NewRedirector(table *Table, logger *zap.Logger) *Redirector {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redirector{logger: logger.Named("redirects")}
	r.Swap(table)
	return r
}

func (r *Redirector) Table() *Table {
	return r.table.Load()
}

func (r *Redirector) Swap(table *Table) {
	if table == nil {
		table, _ = NewTable(nil)
	}
	r.table.Store(table)
}

func (r *Redirector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			next.ServeHTTP(w, req)
			return
		}

		target, status, ok := r.Table().Resolve(req.URL.Path)
		if !ok {
			next.ServeHTTP(w, req)
			return
		}
		if req.URL.RawQuery != "" && !strings.Contains(target, "?") {
			target += "?" + req.URL.RawQuery
		}
		r.logger.Debug("legacy redirect", zap.String("from", req.URL.Path), zap.String("to", target))
		http.Redirect(w, req, target, status)
	})
}

func (r *Redirector) reload(path string) {
	table, err := Load(path)
	if err != nil {
		r.logger.Error("unable reload redirects, keeping previous table", zap.String("path", path), zap.Error(err))
		return
	}
	r.Swap(table)
	r.logger.Info("redirects reloaded", zap.String("path", path), zap.Int("rules", table.Len()))
}

// Watch reloads the table when the file changes until ctx is done. The parent directory is
// watched because editors and config management replace the file instead of writing it.
func (r *Redirector) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	name := filepath.Clean(path)

	debounce := time.NewTimer(RELOAD_DEBOUNCE)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-debounce.C:
			r.reload(path)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounce.Reset(RELOAD_DEBOUNCE)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("redirects watcher error", zap.Error(err))
		}
	}
}
