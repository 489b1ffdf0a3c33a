//go:build linux

package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func rendered(t *testing.T, entries []Entry, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, entries, opts))
	return buf.String()
}

func TestRender_Table(t *testing.T) {
	entries := Build(testSnapshot(), testContext(), mapNamer{0: "root", 1000: "alice"})

	t.Run("header_and_rows", func(t *testing.T) {
		out := rendered(t, entries, Options{Format: FormatTable})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, []string{"USER", "PID", "%CPU", "%MEM", "VSZ", "RSS", "TTY", "STAT", "START", "TIME", "COMMAND"}, strings.Fields(lines[0]))
		assert.Equal(t, []string{"alice", "42", "1.3", "9.8", "8192", "1600", "pts/0", "S", "08:06", "1:01", "/bin/bash", "-l"}, strings.Fields(lines[1]))
		assert.True(t, strings.HasSuffix(lines[2], "[kworker/0:1]"))
		// columns are aligned
		assert.Equal(t, strings.Index(lines[0], "PID"), strings.Index(lines[1], "42"))
	})

	t.Run("no_headers", func(t *testing.T) {
		out := rendered(t, entries, Options{Format: FormatTable, NoHeaders: true})
		assert.NotContains(t, out, "COMMAND")
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})

	t.Run("truncated_to_width", func(t *testing.T) {
		long := []Entry{{User: "alice", PID: 1, TTY: "?", Stat: "S", Start: "08:00", Time: "0:00", Command: strings.Repeat("x", 300)}}
		out := rendered(t, long, Options{Format: FormatTable, Width: 80})
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 80)
		}
		wide := rendered(t, long, Options{Format: FormatTable})
		assert.Contains(t, wide, strings.Repeat("x", 300))
	})

	t.Run("command_longer_than_a_megabyte", func(t *testing.T) {
		huge := strings.Repeat("a", 1100*1024)
		long := []Entry{
			{User: "alice", PID: 1, TTY: "?", Stat: "S", Start: "08:00", Time: "0:00", Command: huge},
			{User: "bob", PID: 2, TTY: "?", Stat: "S", Start: "08:00", Time: "0:00", Command: "/bin/true"},
		}
		out := rendered(t, long, Options{Format: FormatTable})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[1], huge))
		assert.True(t, strings.HasSuffix(lines[2], "/bin/true"))

		out = rendered(t, long, Options{Format: FormatTable, Width: 100})
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 100)
		}
	})

	t.Run("control_characters_cannot_add_rows", func(t *testing.T) {
		forged := []Entry{
			{User: "alice", PID: 1, TTY: "?", Stat: "S", Start: "08:00", Time: "0:00", Command: "sh -c echo\nINJECTED\tcol\r\x1b[2J"},
			{User: "bob", PID: 2, TTY: "?", Stat: "S", Start: "08:00", Time: "0:00", Command: "[evil\nname]"},
		}
		out := rendered(t, forged, Options{Format: FormatTable, NoHeaders: true})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasSuffix(lines[0], "sh -c echo?INJECTED?col??[2J"))
		assert.True(t, strings.HasSuffix(lines[1], "[evil?name]"))
	})

	t.Run("summary", func(t *testing.T) {
		s := Summarize(entries, testSnapshot())
		out := rendered(t, entries, Options{Format: FormatTable, Summary: &s})
		assert.Contains(t, out, "tasks: 3 listed, 2 shown, 1 other, 1 sleeping")
		assert.Contains(t, out, "- skipped:     1 parse-error")
	})
}

func TestRender_JSON(t *testing.T) {
	entries := Build(testSnapshot(), testContext(), nil)
	s := Summarize(entries, testSnapshot())
	out := rendered(t, entries, Options{Format: FormatJSON, Summary: &s})

	var doc struct {
		Processes []map[string]any `json:"processes"`
		Summary   map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Processes, 2)
	assert.Equal(t, float64(42), doc.Processes[0]["pid"])
	assert.Equal(t, "1000", doc.Processes[0]["user"])
	assert.Equal(t, "/usr/bin/bash", doc.Processes[0]["exe"])
	assert.Equal(t, []any{}, doc.Processes[1]["args"])
	assert.NotContains(t, doc.Processes[1], "exe")
	assert.Equal(t, float64(2), doc.Summary["tasks"])

	empty := rendered(t, nil, Options{Format: FormatJSON})
	assert.Contains(t, empty, `"processes": []`)
	assert.NotContains(t, empty, "summary")
}

func TestRender_YAML(t *testing.T) {
	entries := Build(testSnapshot(), testContext(), nil)
	out := rendered(t, entries, Options{Format: FormatYAML})

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Processes, 2)
	assert.Equal(t, 42, doc.Processes[0].PID)
	assert.Equal(t, "/bin/bash -l", doc.Processes[0].Command)
	assert.Equal(t, "[kworker/0:1]", doc.Processes[1].Command)
	assert.Nil(t, doc.Summary)
}

func TestRender_CSV(t *testing.T) {
	entries := Build(testSnapshot(), testContext(), nil)
	entries[0].Command = `sh -c "echo a,b"`

	records, err := csv.NewReader(strings.NewReader(rendered(t, entries, Options{Format: FormatCSV}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"user", "pid", "cpu", "mem", "vsz", "rss", "tty", "stat", "start", "time", "command"}, records[0])
	assert.Equal(t, "42", records[1][1])
	assert.Equal(t, `sh -c "echo a,b"`, records[1][10])

	entries[1].Command = "line1\nline2"
	records, err = csv.NewReader(strings.NewReader(rendered(t, entries, Options{Format: FormatCSV}))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "line1?line2", records[2][10])

	records, err = csv.NewReader(strings.NewReader(rendered(t, entries, Options{Format: FormatCSV, NoHeaders: true}))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.Error(t, Render(&bytes.Buffer{}, nil, Options{Format: "xml"}))
}
