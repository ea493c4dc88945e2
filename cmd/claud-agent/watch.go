package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd creates the "watch" subcommand for auto-synthesizing on
// configuration changes.
func newWatchCmd() *cobra.Command {
	var (
		debounce     time.Duration
		outputFormat string
		outputFile   string
		envFile      string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Auto-synthesize when the env file changes",
		Long: `Watch monitors the env file and re-synthesizes the template on change.

The watch command:
- Monitors the env file for changes
- Re-synthesizes the template on each change
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    claud-agent watch --env-file stack.env -o template.json
    claud-agent watch --env-file stack.env --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(watchOptions{
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
				envFile:      envFile,
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "KEY=VALUE file to watch (required)")
	_ = cmd.MarkFlagRequired("env-file")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFormat string
	outputFile   string
	envFile      string
}

// runWatch monitors the env file and re-synthesizes on changes.
func runWatch(opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absPath, err := filepath.Abs(opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.envFile, err)
	}

	// Watch the directory: editors replace files, which drops a watch on the
	// file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	fmt.Printf("Watching: %s\n", absPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial synth...")
	watchSynth(opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, re-synthesizing...\n", time.Now().Format("15:04:05"))
			watchSynth(opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// watchSynth synthesizes once and reports failures without stopping the
// watch loop.
func watchSynth(opts watchOptions) {
	tmpl, err := synthesize(opts.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synth error: %v\n", err)
		return
	}

	data, err := renderTemplate(tmpl, opts.outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synth error: %v\n", err)
		return
	}

	if err := writeOutput(data, opts.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		return
	}

	fmt.Printf("Synthesized %d resources\n", len(tmpl.Resources))
}
