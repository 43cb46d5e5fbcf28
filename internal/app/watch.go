package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/qworld/internal/adapters/watcher"
	"go.trai.ch/qworld/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounceWindow is the quiet period before changed documents are rebuilt.
const DefaultDebounceWindow = watcher.DefaultDebounceWindow

// watch rebuilds changed documents until ctx is done. Failed passes are
// logged and the loop keeps going.
func (a *App) watch(ctx context.Context, sess *session, roots []string, opts BuildOptions) error {
	if err := a.watcher.Start(ctx, roots...); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	batches := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	a.logger.Info("watching " + strings.Join(roots, ", ") + " for changes")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if !isMarkdown(event.Path) {
				continue
			}
			if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				a.rebuild(gctx, sess, roots, paths, opts)
			}
		}
	})

	return g.Wait()
}

// rebuild runs a pass over the changed documents that are still below a root.
func (a *App) rebuild(ctx context.Context, sess *session, roots, changed []string, opts BuildOptions) {
	wanted := make(map[string]struct{}, len(changed))
	for _, p := range changed {
		wanted[p] = struct{}{}
	}

	var docs []document
	for _, doc := range a.discover(sess.cfg.SiteDir, roots) {
		if _, ok := wanted[doc.source]; ok {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return
	}

	a.logger.Info(fmt.Sprintf("rebuilding %d changed document(s)", len(docs)))
	if _, err := a.pass(ctx, sess, docs, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}
