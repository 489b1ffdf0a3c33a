//go:build linux

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ja7ad/psaux/pkg/config"
	"github.com/ja7ad/psaux/pkg/report"
	"github.com/ja7ad/psaux/pkg/system/mount"
	"github.com/ja7ad/psaux/pkg/system/proc"
	"github.com/ja7ad/psaux/pkg/system/user"
	"github.com/ja7ad/psaux/pkg/system/util"
)

type opts struct {
	procRoot  string
	workers   int
	output    string
	sort      string
	noHeaders bool
	wide      bool
	summary   bool
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "psaux",
		Short: "Snapshot of every visible process, like ps aux",
		Long: `psaux reads the kernel's per-process records under /proc once and prints
each visible process with its owner, CPU and memory share, virtual and resident
size, terminal, state, start time, accumulated CPU time and command line.

Processes that exit or cannot be read while the snapshot is taken are left out;
only a failure to read the system-wide constants (clock ticks, page size, boot
time, total memory) makes the run fail.

Environment:
  PSAUX_PROC_ROOT  procfs root (default /proc)
  PSAUX_WORKERS    concurrent readers (default 4)
  PSAUX_FORMAT     table, json, yaml or csv (default table)
  PSAUX_SORT       none, pid, cpu, mem, rss, vsz, start, time or user
  CLK_TCK          override the clock-tick rate
  PAGE_SIZE        override the page size

Examples:
  psaux
  psaux --sort cpu -w
  psaux -o json --summary | jq '.summary'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, cfg, o)
		},
	}

	root.Flags().StringVar(&o.procRoot, "proc-root", "", "procfs root to read (overrides PSAUX_PROC_ROOT)")
	root.Flags().IntVar(&o.workers, "workers", 0, "number of concurrent process readers (overrides PSAUX_WORKERS)")
	root.Flags().StringVarP(&o.output, "output", "o", "", "output format: table, json, yaml, csv (overrides PSAUX_FORMAT)")
	root.Flags().StringVar(&o.sort, "sort", "", "sort key: none, pid, cpu, mem, rss, vsz, start, time, user")
	root.Flags().BoolVar(&o.noHeaders, "no-headers", false, "omit the header line of table and csv output")
	root.Flags().BoolVarP(&o.wide, "wide", "w", false, "do not truncate table lines to the terminal width")
	root.Flags().BoolVar(&o.summary, "summary", false, "print host information and totals")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log skipped processes and diagnostics to stderr")

	return root
}

// apply lets explicitly set flags win over the environment, then validates
// the result including the output format and sort key.
func apply(cmd *cobra.Command, cfg config.Config, o opts) (config.Config, report.Format, report.SortKey, error) {
	flags := cmd.Flags()
	if flags.Changed("proc-root") {
		cfg.ProcRoot = o.procRoot
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("output") {
		cfg.Format = o.output
	}
	if flags.Changed("sort") {
		cfg.Sort = o.sort
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", "", err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return cfg, "", "", err
	}
	key, err := report.ParseSortKey(cfg.Sort)
	if err != nil {
		return cfg, "", "", err
	}
	return cfg, format, key, nil
}

func run(ctx context.Context, cmd *cobra.Command, cfg config.Config, o opts) error {
	cfg, format, key, err := apply(cmd, cfg, o)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probe(log, cfg.ProcRoot)

	col, err := proc.NewCollector(proc.Config{
		Root:       cfg.ProcRoot,
		ClockTicks: cfg.ClockTicks,
		PageSize:   cfg.PageSize,
		Workers:    cfg.Workers,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("system context: %w", err)
	}

	snap, err := col.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	log.Debug("snapshot taken", "listed", snap.Listed, "shown", len(snap.Entries), "skipped", len(snap.Skipped))

	entries := report.Build(snap, col.Context(), user.NewResolver())
	report.Sort(entries, key)

	out := cmd.OutOrStdout()
	ro := report.Options{Format: format, NoHeaders: o.noHeaders}
	if o.summary {
		s := report.Summarize(entries, snap)
		ro.Summary = &s
	}
	if format == report.FormatTable {
		if !o.wide {
			ro.Width = terminalWidth(out)
		}
		if o.summary {
			host, kernel, cpus, mem := util.SystemSummary()
			fmt.Fprintf(out, _console, host, kernel, cpus, mem, col.Context().SampledAt.Format(time.DateTime))
		}
	}
	return report.Render(out, entries, ro)
}

// probe reports procfs mount options that hide processes. It never fails the run.
func probe(log *slog.Logger, root string) {
	info, ok, err := mount.Detect(root)
	switch {
	case err != nil:
		log.Debug("procfs probe failed", "root", root, "err", err)
	case !ok:
		log.Debug("procfs root is not a mount point", "root", root)
	case !info.IsProc():
		log.Warn("procfs root is not a proc mount", "root", root, "fstype", info.FSType)
	case info.Restricted():
		log.Debug("procfs hides other users' processes", "root", root, "hidepid", info.HidePID.String())
	}
}

// terminalWidth returns the column count of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

const _console = `       Host: %s
       Kernel: %s
       CPUs: %s
       Mem: %s

Process snapshot as of %s:

`
