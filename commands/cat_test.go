package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/josephlewis42/mithlsh/core/kshell/kshelltest"
	"github.com/stretchr/testify/assert"
)

func TestCat(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":       {"cat"},
		"trailing-sp":  {"cat "},
		"missing":      {"cat does-not-exist.txt"},
		"found":        {"cat README.txt"},
		"extra-args":   {"cat README.txt other.txt"},
		"name-too-big": {"cat " + strings.Repeat("a", 63)},
	}

	cases.Run(t)
}

func TestCat_files(t *testing.T) {
	cases := map[string]struct {
		line      string
		expected  string
		fileCalls int
	}{
		"usage":          {"cat", CatUsage, 0},
		"usage-spaces":   {"cat    ", CatUsage, 0},
		"too-long-63":    {"cat " + strings.Repeat("x", 63), CatFilenameTooLong, 0},
		"too-long-200":   {"cat " + strings.Repeat("x", 200), CatFilenameTooLong, 0},
		"longest-ok":     {"cat " + strings.Repeat("x", 62), CatReadFailed, 1},
		"multibyte-long": {"cat " + strings.Repeat("é", 32), CatFilenameTooLong, 0},
		"found":          {"cat README.txt", "Hello, world!", 1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			in, _, files := newTestInterpreter()

			assert.Equal(t, tc.expected, in.Run(tc.line, kshell.ScratchSize))
			assert.Equal(t, tc.fileCalls, files.Calls())
		})
	}
}

func TestCat_serviceFailure(t *testing.T) {
	in, _, files := newTestInterpreter()
	files.ReadErr = kshelltest.ErrInjected

	assert.Equal(t, CatReadFailed, in.Run("cat README.txt", kshell.ScratchSize))
	assert.Equal(t, []string{"README.txt"}, files.Opens)
}

func TestCat_largeFile(t *testing.T) {
	in, _, files := newTestInterpreter()
	files.Entries["big.txt"] = strings.Repeat("z", 3*kshell.ScratchSize)

	out := in.Run("cat big.txt", 4*kshell.ScratchSize)
	assert.Equal(t, strings.Repeat("z", kshell.ScratchSize), out)
}

func TestCat_noFilesystem(t *testing.T) {
	in := &Interpreter{}

	assert.Equal(t, CatReadFailed, in.Run("cat README.txt", 64))
	assert.Equal(t, CatUsage, in.Run("cat", 64))
}

type miscountingFiles struct {
	kshelltest.Files
}

func (m *miscountingFiles) ReadFile(name string, buf []byte) (int, error) {
	return len(buf) + 10, nil
}

func TestCat_rejectsBadCounts(t *testing.T) {
	in := &Interpreter{Files: &miscountingFiles{}}

	assert.Equal(t, CatReadFailed, in.Run("cat x", 64))
}

func TestCat_errorsAreNotDistinguished(t *testing.T) {
	for _, err := range []error{kshelltest.ErrInjected, errors.New("corrupt")} {
		in, _, files := newTestInterpreter()
		files.ReadErr = err

		assert.Equal(t, CatReadFailed, in.Run("cat README.txt", 64))
	}
}
