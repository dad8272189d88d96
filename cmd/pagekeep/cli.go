package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/capture"
	"github.com/fwojciec/pagekeep/sqlite"
)

// PageWatcher reports completed page loads to a handler until ctx is done.
type PageWatcher interface {
	Watch(ctx context.Context, handle pagekeep.PageHandler) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Settings   pagekeep.SettingsService
	Content    pagekeep.ContentService
	Dispatcher *capture.Dispatcher
	Watcher    PageWatcher
	Opener     pagekeep.PageOpener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" help:"Database path (default ~/.pagekeep/pagekeep.db, or PAGEKEEP_DB)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Watch     WatchCmd     `cmd:"" help:"Capture whitelisted pages as they load in Chrome"`
	Capture   CaptureCmd   `cmd:"" help:"Capture a single URL"`
	List      ListCmd      `cmd:"" help:"List captured content"`
	Delete    DeleteCmd    `cmd:"" help:"Delete captured content"`
	Search    SearchCmd    `cmd:"" help:"Search captured content on the content server"`
	Whitelist WhitelistCmd `cmd:"" help:"Manage whitelisted domains"`
	Config    ConfigCmd    `cmd:"" help:"Show or change settings"`
	UI        UICmd        `cmd:"" name:"ui" help:"Serve the companion page"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	RemoteURL string `name:"remote-url" env:"PAGEKEEP_REMOTE_URL" help:"DevTools address of a running Chrome (default: launch one)"`
	Headless  bool   `default:"true" negatable:"" help:"Run a launched Chrome headless"`
	Dedupe    bool   `help:"Skip captures identical to one already submitted this session"`
	Extractor string `enum:"rules,trafilatura,readability" default:"rules" help:"Content extractor (rules, trafilatura, readability)"`
	UI        string `name:"ui" placeholder:"ADDR" help:"Also serve the companion page on this address"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URL       string `arg:"" help:"Page URL"`
	Browser   bool   `short:"b" help:"Render the page in Chrome instead of fetching it"`
	RemoteURL string `name:"remote-url" env:"PAGEKEEP_REMOTE_URL" help:"DevTools address of a running Chrome, with --browser"`
	DryRun    bool   `short:"n" name:"dry-run" help:"Print extracted content without submitting"`
	Out       string `type:"path" placeholder:"DIR" help:"Write the capture to a directory instead of submitting it"`
	Extractor string `enum:"rules,trafilatura,readability" default:"rules" help:"Content extractor (rules, trafilatura, readability)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	From string `placeholder:"YYYY-MM-DD" help:"Only items captured on or after this day"`
	To   string `placeholder:"YYYY-MM-DD" help:"Only items captured on or before this day"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	IDs   []string `arg:"" optional:"" name:"id" help:"Content ids to delete"`
	All   bool     `help:"Delete every item in the date range"`
	From  string   `placeholder:"YYYY-MM-DD" help:"With --all, only items captured on or after this day"`
	To    string   `placeholder:"YYYY-MM-DD" help:"With --all, only items captured on or before this day"`
	Force bool     `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   []string `arg:"" help:"Search query"`
	Preview int      `default:"200" help:"Characters of content shown per result (0 for all)"`
}

// WhitelistCmd groups the whitelist subcommands.
type WhitelistCmd struct {
	Add    WhitelistAddCmd    `cmd:"" help:"Allow capture on a domain and its subdomains"`
	Remove WhitelistRemoveCmd `cmd:"" help:"Stop capturing on a domain"`
	List   WhitelistListCmd   `cmd:"" help:"List whitelisted domains"`
}

// WhitelistAddCmd is the "whitelist add" subcommand.
type WhitelistAddCmd struct {
	Domain string `arg:"" help:"Domain, e.g. example.com"`
}

// WhitelistRemoveCmd is the "whitelist remove" subcommand.
type WhitelistRemoveCmd struct {
	Domain string `arg:"" help:"Domain to remove"`
}

// WhitelistListCmd is the "whitelist list" subcommand.
type WhitelistListCmd struct{}

// ConfigCmd groups the config subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Show current settings"`
	Set  ConfigSetCmd  `cmd:"" help:"Change a setting"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" enum:"serverUrl,whitelistedDomains" help:"Setting key (serverUrl, whitelistedDomains)"`
	Value string `arg:"" help:"New value; whitelistedDomains takes a comma-separated list"`
}

// UICmd is the "ui" subcommand.
type UICmd struct {
	Addr string `default:"127.0.0.1:5050" help:"Listen address"`
}
