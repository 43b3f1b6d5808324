package yexp_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-yexp/pkg/yexp"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return dir
}

func TestLoadDir(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  map[string][]string
	}{
		{
			name:  "lines are trimmed",
			files: map[string]string{"color.txt": "red\n blue \n"},
			want:  map[string][]string{"%color%": {"red", "blue"}},
		},
		{
			name:  "blank lines are kept",
			files: map[string]string{"x.txt": "a\n\n  \nb"},
			want:  map[string][]string{"%x%": {"a", "", "", "b"}},
		},
		{
			name:  "crlf line endings",
			files: map[string]string{"x.txt": "a\r\nb\r\n"},
			want:  map[string][]string{"%x%": {"a", "b"}},
		},
		{
			name:  "single newline is one empty value",
			files: map[string]string{"x.txt": "\n"},
			want:  map[string][]string{"%x%": {""}},
		},
		{
			name: "empty and foreign files are skipped",
			files: map[string]string{
				"empty.txt": "",
				"notes.md":  "ignored\n",
				"UPPER.TXT": "ignored\n",
				"size.txt":  "S\nM\n",
			},
			want: map[string][]string{"%size%": {"S", "M"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := yexp.LoadDir(writeFiles(t, tt.files))
			require.NoError(t, err)

			got := make(map[string][]string)
			for p, values := range reps.All() {
				got[p] = values
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDir_OrderedByFileName(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.txt": "2\n",
		"a.txt": "1\n",
		"c.txt": "3\n",
	})

	reps, err := yexp.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"%a%", "%b%", "%c%"}, reps.Placeholders())
}

func TestLoadDir_IgnoresSubdirectories(t *testing.T) {
	dir := writeFiles(t, map[string]string{"real.txt": "v\n"})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0o755))

	reps, err := yexp.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reps.Len())
	_, ok := reps.Get("%dir%")
	assert.False(t, ok)
}

func TestLoadDir_NoReplacementsFound(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{
			name: "only non-txt files",
			dir: func(t *testing.T) string {
				return writeFiles(t, map[string]string{"notes.md": "hello\n"})
			},
		},
		{
			name: "empty directory",
			dir:  func(t *testing.T) string { return t.TempDir() },
		},
		{
			name: "nonexistent directory",
			dir: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
		},
		{
			name: "only empty txt files",
			dir: func(t *testing.T) string {
				return writeFiles(t, map[string]string{"a.txt": "", "b.txt": ""})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := yexp.LoadDir(tt.dir(t))
			require.ErrorIs(t, err, yexp.ErrNoReplacementsFound)
			assert.Nil(t, reps)
		})
	}
}

func TestLoadDir_StrictDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := yexp.LoadDir(missing, yexp.WithStrictDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, yexp.ErrNoReplacementsFound)
}

func TestLoadDir_UnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	dir := writeFiles(t, map[string]string{"ok.txt": "v\n", "locked.txt": "v\n"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked.txt"), 0o000))

	_, err := yexp.LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

var errDiskFailure = errors.New("disk failure")

// failingFS 打开 broken 时返回读取必然失败的文件，其余操作交给 MapFS。
type failingFS struct {
	fstest.MapFS
	broken string
}

func (f failingFS) Open(name string) (fs.File, error) {
	file, err := f.MapFS.Open(name)
	if err != nil || name != f.broken {
		return file, err
	}

	return failingFile{File: file}, nil
}

type failingFile struct {
	fs.File
}

func (failingFile) Read([]byte) (int, error) {
	return 0, errDiskFailure
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"env.txt":    {Data: []byte("dev\nprod\n")},
		"region.txt": {Data: []byte("eu")},
		"notes.md":   {Data: []byte("ignored")},
		"sub/x.txt":  {Data: []byte("nested")},
	}

	reps, err := yexp.LoadFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"%env%", "%region%"}, reps.Placeholders())
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fs.FS
		opts []yexp.LoadOption
		want error
	}{
		{
			name: "file read failure aborts loading",
			fsys: failingFS{
				MapFS:  fstest.MapFS{"a.txt": {Data: []byte("v\n")}, "b.txt": {Data: []byte("v\n")}},
				broken: "b.txt",
			},
			want: errDiskFailure,
		},
		{
			name: "only subdirectories",
			fsys: fstest.MapFS{"other/a.txt": {Data: []byte("v")}},
			want: yexp.ErrNoReplacementsFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := yexp.LoadFS(tt.fsys, tt.opts...)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, reps)
		})
	}
}
