//go:build linux

package mount

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `21 1 0:20 / /sys rw,nosuid,nodev,noexec,relatime shared:7 - sysfs sysfs rw
22 1 0:21 / /proc rw,nosuid,nodev,noexec,relatime shared:12 - proc proc rw
30 22 0:27 / /proc/sys/fs/binfmt_misc rw,relatime shared:13 - binfmt_misc binfmt_misc rw
41 1 0:40 / /mnt/my\040proc rw,relatime - proc proc rw,hidepid=invisible
`

func TestFind(t *testing.T) {
	t.Run("plain_proc", func(t *testing.T) {
		info, ok, err := Find(strings.NewReader(sample), "/proc")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, info.IsProc())
		assert.Equal(t, "proc", info.Source)
		assert.Equal(t, HideOff, info.HidePID)
		assert.False(t, info.Restricted())
	})

	t.Run("escaped_mount_point_with_hidepid", func(t *testing.T) {
		info, ok, err := Find(strings.NewReader(sample), "/mnt/my proc")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, HideInvisible, info.HidePID)
		assert.True(t, info.Restricted())
	})

	t.Run("not_a_mount_point", func(t *testing.T) {
		_, ok, err := Find(strings.NewReader(sample), "/tmp/fake")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("later_mount_shadows", func(t *testing.T) {
		in := sample + "50 1 0:50 / /proc rw,relatime - proc proc rw,hidepid=2\n"
		info, ok, err := Find(strings.NewReader(in), "/proc")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, HideInvisible, info.HidePID)
	})

	t.Run("garbage_lines_ignored", func(t *testing.T) {
		_, ok, err := Find(strings.NewReader("not mountinfo\n\n1 2 3\n"), "/proc")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestParseHidePID(t *testing.T) {
	cases := map[string]HidePID{
		"rw":                    HideOff,
		"rw,hidepid=0":          HideOff,
		"rw,hidepid=off":        HideOff,
		"rw,hidepid=1":          HideNoAccess,
		"rw,hidepid=noaccess":   HideNoAccess,
		"rw,hidepid=2,gid=10":   HideInvisible,
		"hidepid=ptraceable,rw": HidePtraceable,
		"hidepid=4":             HidePtraceable,
	}
	for opts, want := range cases {
		assert.Equal(t, want, parseHidePID(opts), opts)
	}
	assert.Equal(t, "invisible", HideInvisible.String())
}

func TestDetect_FakeRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "self"), 0o755))
	line := "99 1 0:99 / " + root + " rw - proc proc rw,hidepid=1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "self", "mountinfo"), []byte(line), 0o644))

	info, ok, err := Detect(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, HideNoAccess, info.HidePID)

	_, _, err = Detect(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestDetect_Live(t *testing.T) {
	if _, err := os.Stat("/proc/self/mountinfo"); err != nil {
		t.Skip("skipping: /proc not available")
	}
	info, ok, err := Detect("/proc")
	require.NoError(t, err)
	if ok {
		assert.True(t, info.IsProc())
	}
	t.Logf("detected %s on %s (hidepid=%s)", info.FSType, info.MountPoint, info.HidePID)
}
