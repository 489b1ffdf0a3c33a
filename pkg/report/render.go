//go:build linux

package report

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/psaux/pkg/system/util"
)

// Options controls Render.
type Options struct {
	Format Format
	// NoHeaders drops the header line of table and csv output.
	NoHeaders bool
	// Width truncates table lines to this many terminal cells; 0 disables it.
	Width int
	// Summary, when set, is appended to the output.
	Summary *Summary
}

var columns = []string{"USER", "PID", "%CPU", "%MEM", "VSZ", "RSS", "TTY", "STAT", "START", "TIME", "COMMAND"}

// Render writes entries to w in the selected format.
func Render(w io.Writer, entries []Entry, opts Options) error {
	switch opts.Format {
	case FormatTable, "":
		if err := writeTable(w, entries, opts); err != nil {
			return err
		}
		if opts.Summary != nil {
			return WriteSummary(w, *opts.Summary)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document(entries, opts.Summary))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(entries, opts.Summary)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, entries, opts.NoHeaders)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func document(entries []Entry, s *Summary) Document {
	if entries == nil {
		entries = []Entry{}
	}
	return Document{Processes: entries, Summary: s}
}

func row(e Entry) []string {
	return []string{
		e.User,
		strconv.Itoa(e.PID),
		util.FmtFloat(e.CPU),
		util.FmtFloat(e.Mem),
		strconv.FormatUint(e.VSZ, 10),
		strconv.FormatUint(e.RSS, 10),
		e.TTY,
		e.Stat,
		e.Start,
		e.Time,
		printable(e.Command),
	}
}

func writeTable(w io.Writer, entries []Entry, opts Options) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', 0)
	if !opts.NoHeaders {
		fmt.Fprintln(tw, strings.Join(columns, "\t"))
	}
	for _, e := range entries {
		fmt.Fprintln(tw, strings.Join(row(e), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, line := range strings.SplitAfter(buf.String(), "\n") {
		if line == "" {
			continue
		}
		line = strings.TrimRight(line, " \n")
		if opts.Width > 0 {
			line = runewidth.Truncate(line, opts.Width, "")
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// printable replaces control characters with '?', as ps does, so a command
// line cannot break a row or inject one.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}

func writeCSV(w io.Writer, entries []Entry, noHeaders bool) error {
	cw := csv.NewWriter(w)
	if !noHeaders {
		header := make([]string, len(columns))
		for i, c := range columns {
			header[i] = strings.ToLower(strings.TrimPrefix(c, "%"))
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := cw.Write(row(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary prints s as a short block of totals.
func WriteSummary(w io.Writer, s Summary) error {
	states := make([]string, 0, len(s.ByState))
	for k := range s.ByState {
		states = append(states, k)
	}
	slices.Sort(states)

	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "tasks: %d listed, %d shown", s.Listed, s.Tasks)
	for _, k := range states {
		fmt.Fprintf(&b, ", %d %s", s.ByState[k], k)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- threads:     %d\n", s.Threads)
	fmt.Fprintf(&b, "- cpu (sum):   %s %%\n", util.FmtFloat(s.CPUPercent))
	fmt.Fprintf(&b, "- cpu (avg):   %s %%\n", util.FmtFloat(s.AvgCPU))
	fmt.Fprintf(&b, "- rss (sum):   %d KiB\n", s.RSSKiB)
	if len(s.Skipped) > 0 {
		skipped := make([]string, 0, len(s.Skipped))
		for k, v := range s.Skipped {
			skipped = append(skipped, fmt.Sprintf("%d %s", v, k))
		}
		slices.Sort(skipped)
		fmt.Fprintf(&b, "- skipped:     %s\n", strings.Join(skipped, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
