// Command post-index renders the post index page from the posts directory
// and writes it to standard output.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/pubtools"
)

var errNoArchive = errors.New("post_index: no archive configured; pass --archive or set archive_path")

type options struct {
	config  string
	feed    string
	sitemap string
	archive string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	logger := log.New(stderr, "post_index: ", 0)

	cmd := &cobra.Command{
		Use:          "post-index",
		Short:        "Render the post index page",
		Long:         "post-index reads every file in posts/, sorts them by date and prints the index page built from template/global.html and template/post_miniature.html.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), opts, stdout, logger)
		},
	}
	cmd.SetErr(stderr)
	cmd.PersistentFlags().StringVar(&opts.config, "config", pubtools.EnvOr("PUBTOOLS_CONFIG", ""), "path to config file")
	cmd.Flags().StringVar(&opts.feed, "feed", "", "also write an RSS feed to this file")
	cmd.Flags().StringVar(&opts.sitemap, "sitemap", "", "also write a sitemap to this file")
	cmd.PersistentFlags().StringVar(&opts.archive, "archive", "", "SQLite database recording indexed posts")

	cmd.AddCommand(newServeCmd(&opts, logger))
	cmd.AddCommand(newArchiveCmd(&opts, stdout))
	return cmd
}

func newServeCmd(opts *options, logger *log.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the index, feed and sitemap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pubtools.LoadConfig(opts.config)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Printf("previewing %s on %s", cfg.PostsDir, cfg.Addr)
			return pubtools.NewPreview(cfg).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":3000\")")
	return cmd
}

func newArchiveCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "List the posts recorded by the last archived build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listArchive(*opts, stdout)
		},
	}
}

// archivePath prefers the --archive flag over archive_path from config.
func archivePath(opts options, cfg *pubtools.SiteConfig) string {
	if opts.archive != "" {
		return opts.archive
	}
	return cfg.ArchivePath
}

// listArchive prints one "date<TAB>title<TAB>file" line per archived post,
// newest first.
func listArchive(opts options, stdout io.Writer) error {
	cfg, err := pubtools.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	path := archivePath(opts, &cfg)
	if path == "" {
		return errNoArchive
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("post_index: open archive: %w", err)
	}
	store, err := pubtools.NewStore(path)
	if err != nil {
		return fmt.Errorf("post_index: open archive: %w", err)
	}
	defer store.Close()

	posts, err := store.ListPosts()
	if err != nil {
		return fmt.Errorf("post_index: list archive: %w", err)
	}
	for _, p := range posts {
		if _, err := fmt.Fprintf(stdout, "%s\t%s\t%s\n", p.Publication.Format(pubtools.DateLayout), p.Title, p.File); err != nil {
			return err
		}
	}
	return nil
}

func runIndex(ctx context.Context, opts options, stdout io.Writer, logger *log.Logger) error {
	cfg, err := pubtools.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if (opts.feed != "" || opts.sitemap != "") && cfg.URL == "" {
		return pubtools.ErrNoSiteURL
	}
	tmpl, err := pubtools.IndexTemplates(&cfg)
	if err != nil {
		return err
	}
	page, posts, err := pubtools.BuildIndex(ctx, cfg.PostsDir, cfg.IndexTitle, tmpl)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, page); err != nil {
		return err
	}

	if opts.feed != "" {
		if err := writeFile(opts.feed, func(w io.Writer) error {
			return pubtools.WriteFeed(w, &cfg, posts)
		}); err != nil {
			return err
		}
		logger.Printf("wrote feed to %s", opts.feed)
	}
	if opts.sitemap != "" {
		if err := writeFile(opts.sitemap, func(w io.Writer) error {
			return pubtools.WriteSitemap(w, &cfg, posts)
		}); err != nil {
			return err
		}
		logger.Printf("wrote sitemap to %s", opts.sitemap)
	}

	if archive := archivePath(opts, &cfg); archive != "" {
		store, err := pubtools.NewStore(archive)
		if err != nil {
			return fmt.Errorf("post_index: open archive: %w", err)
		}
		defer store.Close()
		if err := store.SyncPosts(posts); err != nil {
			return fmt.Errorf("post_index: archive posts: %w", err)
		}
		logger.Printf("archived %d posts to %s", len(posts), archive)
	}
	return nil
}

// writeFile renders fully before touching path, so a failed render leaves any
// previous file in place.
func writeFile(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
