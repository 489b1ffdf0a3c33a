package report

import "time"

// Entry is one row of the report, the boundary between snapshot assembly
// and rendering. All values are already formatted or normalized for display.
type Entry struct {
	User string `json:"user" yaml:"user"`
	UID  uint32 `json:"uid" yaml:"uid"`
	PID  int    `json:"pid" yaml:"pid"`
	PPID int    `json:"ppid" yaml:"ppid"`

	CPU float64 `json:"cpu_percent" yaml:"cpu_percent"`
	Mem float64 `json:"mem_percent" yaml:"mem_percent"`
	VSZ uint64  `json:"vsz_kib" yaml:"vsz_kib"`
	RSS uint64  `json:"rss_kib" yaml:"rss_kib"`

	// TTY is "?" for processes without a controlling terminal.
	TTY string `json:"tty" yaml:"tty"`
	// Stat is the single-character kernel state code.
	Stat  string `json:"stat" yaml:"stat"`
	State string `json:"state" yaml:"state"`

	Start      string    `json:"start" yaml:"start"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	Time       string    `json:"time" yaml:"time"`
	CPUSeconds float64   `json:"cpu_seconds" yaml:"cpu_seconds"`
	Threads    int       `json:"threads" yaml:"threads"`

	Name    string   `json:"name" yaml:"name"`
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args" yaml:"args"`
	Exe     string   `json:"exe,omitempty" yaml:"exe,omitempty"`

	// Withheld names the records that could not be read, if any.
	Withheld []string `json:"withheld,omitempty" yaml:"withheld,omitempty"`
}

// Summary holds totals over a report.
type Summary struct {
	Listed     int            `json:"listed" yaml:"listed"`
	Tasks      int            `json:"tasks" yaml:"tasks"`
	ByState    map[string]int `json:"by_state" yaml:"by_state"`
	Threads    int            `json:"threads" yaml:"threads"`
	CPUPercent float64        `json:"cpu_percent" yaml:"cpu_percent"`
	AvgCPU     float64        `json:"avg_cpu_percent" yaml:"avg_cpu_percent"`
	RSSKiB     uint64         `json:"rss_kib" yaml:"rss_kib"`
	Skipped    map[string]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Document is the top-level value of the structured (JSON, YAML) outputs.
type Document struct {
	Processes []Entry  `json:"processes" yaml:"processes"`
	Summary   *Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}
