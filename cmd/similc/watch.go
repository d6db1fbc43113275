package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/simlang/similc/internal/config"
)

// watchLoop compiles once, then recompiles whenever one of the input
// files changes. Events are debounced because editors typically fire
// several write events per save. The loop runs until interrupted.
func watchLoop(inputs []string) error {
	if err := runCompile(inputs); err != nil && err != errCompileFailed {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories: many editors replace the file on
	// save, which drops a watch registered on the file itself.
	watched := make(map[string]bool)
	inputSet := make(map[string]bool)
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", input, err)
		}
		inputSet[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	debounce := time.Duration(config.GetInt(config.KeyWatchDebounce)) * time.Millisecond
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(os.Stderr, "similc: watching %d file(s), press Ctrl-C to stop\n", len(inputs))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !inputSet[abs] {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fmt.Fprintf(os.Stderr, "similc: change detected, recompiling\n")
			if err := runCompile(inputs); err != nil && err != errCompileFailed {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "similc: watch error: %s\n", err.Error())

		case <-interrupt:
			return nil
		}
	}
}
