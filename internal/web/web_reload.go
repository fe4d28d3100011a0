package web

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// watchTemplates drops rendered pages whenever a file in the template
// directory changes. The watcher lives until ctx is done.
func (s *WebServer) watchTemplates(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(s.Config.TemplateDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.Config.TemplateDir, err)
	}
	log.Printf("[RELOAD]: watching %s for template changes", s.Config.TemplateDir)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isTemplateChange(event) {
					continue
				}
				log.Printf("[RELOAD]: %s %s, dropping rendered pages", event.Op, event.Name)
				s.Pages.Invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[RELOAD]: watcher error: %v", err)
			}
		}
	}()
	return nil
}

func isTemplateChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
