package workflow

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/sunrise/internal/prompt"
	"github.com/papapumpkin/sunrise/internal/relpath"
	"github.com/papapumpkin/sunrise/internal/store"
	"github.com/papapumpkin/sunrise/internal/ui"
	"github.com/papapumpkin/sunrise/internal/walk"
)

// lockedBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	env    Env
	out    *lockedBuffer
	script *prompt.Script
}

func newHarness(answers ...string) *harness {
	out := &lockedBuffer{}
	script := prompt.NewScript(answers...)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &harness{
		env: Env{
			Printer:  ui.New(out, io.Discard, false),
			Prompter: script,
			Walker:   walk.FS{},
			Log:      log,
		},
		out:    out,
		script: script,
	}
}

// newTree creates a canonical root with the given files and, when storeContents
// is non-nil, a store file.
func newTree(t *testing.T, storeContents *string, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	if storeContents != nil {
		require.NoError(t, os.WriteFile(filepath.Join(root, store.FileName), []byte(*storeContents), 0o644))
	}
	return root
}

func contents(s string) *string { return &s }

func descriptions(t *testing.T, root string) map[relpath.Path]string {
	t.Helper()
	s, err := store.Load(root)
	require.NoError(t, err)
	return s.Descriptions()
}

func TestInit_CreatesThenReportsExisting(t *testing.T) {
	t.Parallel()

	root := newTree(t, nil)
	h := newHarness()

	require.NoError(t, Init(h.env, root))
	path := filepath.Join(root, store.FileName)
	assert.Contains(t, h.out.String(), "Initialised "+path)
	assert.Empty(t, descriptions(t, root))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Init(h.env, root))
	assert.Contains(t, h.out.String(), path+" already exists.")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInteractive_DiscoversNewPath(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"src/main" = "entry point"`), "src/main", "src/util")
	// Enumeration order: src, src/main (described), src/util.
	h := newHarness("", "helper")

	require.NoError(t, Interactive(h.env, root))
	assert.Equal(t, map[relpath.Path]string{
		"src/main": "entry point",
		"src/util": "helper",
	}, descriptions(t, root))
	assert.Equal(t, 0, h.script.Remaining())
	require.Len(t, h.script.Messages, 2)
	assert.Equal(t, "src: "+describePrompt+": ", h.script.Messages[0])
	assert.NotContains(t, h.out.String(), nothingToDo)
}

func TestInteractive_FromSubdirectory(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(""), "src/main", "docs/guide")
	h := newHarness("sources", "entry")

	require.NoError(t, Interactive(h.env, filepath.Join(root, "src")))
	assert.Equal(t, map[relpath.Path]string{"src": "sources", "src/main": "entry"}, descriptions(t, root))
}

func TestInteractive_RemovesStaleAfterDiscovery(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"old/file" = "desc"`), "new.go")
	h := newHarness("fresh", "")

	require.NoError(t, Interactive(h.env, root))
	assert.Equal(t, map[relpath.Path]string{"new.go": "fresh"}, descriptions(t, root))
	require.Len(t, h.script.Messages, 2)
	assert.Contains(t, h.script.Messages[1], "old/file no longer exists")
}

func TestInteractive_NothingToDo(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"a.go" = "described"`), "a.go", "b.go")
	h := newHarness("")

	require.NoError(t, Interactive(h.env, root))
	assert.Contains(t, h.out.String(), nothingToDo)
	assert.Equal(t, map[relpath.Path]string{"a.go": "described"}, descriptions(t, root))
}

func TestInteractive_InputClosed(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(""), "a.go")
	h := newHarness()

	err := Interactive(h.env, root)
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
}

func TestClean_DefaultYesRemoves(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"old/file" = "desc"`))
	h := newHarness("")

	require.NoError(t, Clean(h.env, root))
	assert.Empty(t, descriptions(t, root))
	assert.NotContains(t, h.out.String(), nothingToDo)
}

func TestClean_NoKeeps(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"old/file" = "desc"`))
	h := newHarness("no")

	require.NoError(t, Clean(h.env, root))
	assert.Equal(t, map[relpath.Path]string{"old/file": "desc"}, descriptions(t, root))
	assert.Contains(t, h.out.String(), nothingToDo)
}

func TestClean_RepromptsOnGarbage(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"old/file" = "desc"`))
	h := newHarness("perhaps", "yes please")

	require.NoError(t, Clean(h.env, root))
	assert.Empty(t, descriptions(t, root))
	assert.Len(t, h.script.Messages, 2)
}

func TestReview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		want   map[relpath.Path]string
	}{
		{"delete", "d", map[relpath.Path]string{}},
		{"skip", "", map[relpath.Path]string{"src/main": "entry point"}},
		{"update", "the main binary", map[relpath.Path]string{"src/main": "the main binary"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := newTree(t, contents(`"src/main" = "entry point"`), "src/main")
			h := newHarness(tt.answer)

			require.NoError(t, Review(h.env, root))
			assert.Equal(t, tt.want, descriptions(t, root))
			assert.Contains(t, h.out.String(), "Current Description: entry point")
		})
	}
}

func TestReview_IteratesSnapshot(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"a" = "1"`+"\n"+`"b" = "2"`+"\n"+`"c" = "3"`))
	h := newHarness("d", "two", "")

	require.NoError(t, Review(h.env, root))
	assert.Equal(t, map[relpath.Path]string{"b": "two", "c": "3"}, descriptions(t, root))
	assert.Equal(t, 0, h.script.Remaining())
}

func TestEdit(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"src/main.go" = "old"`), "src/main.go")
	target := filepath.Join(root, "src", "main.go")

	h := newHarness("")
	require.NoError(t, Edit(h.env, target))
	assert.Contains(t, h.out.String(), "Previous description: old")
	assert.Equal(t, map[relpath.Path]string{"src/main.go": "old"}, descriptions(t, root), "empty input never mutates")

	h = newHarness("entry point")
	require.NoError(t, Edit(h.env, target))
	assert.Equal(t, map[relpath.Path]string{"src/main.go": "entry point"}, descriptions(t, root))
	assert.Equal(t, []string{"src/main.go: " + editPrompt + ": "}, h.script.Messages)
}

func TestEdit_Directory(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(""), "pkg/a.go")
	h := newHarness("library code")

	require.NoError(t, Edit(h.env, filepath.Join(root, "pkg")))
	assert.Equal(t, map[relpath.Path]string{"pkg": "library code"}, descriptions(t, root))
	assert.NotContains(t, h.out.String(), "Previous description")
}

func TestEdit_SymlinkSharesKeyWithWalk(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(""), "real/f")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	h := newHarness("via link")
	require.NoError(t, Edit(h.env, filepath.Join(root, "link")))
	assert.Equal(t, map[relpath.Path]string{"link": "via link"}, descriptions(t, root))

	// Only the real entries are still undescribed.
	h = newHarness("", "")
	require.NoError(t, Interactive(h.env, root))
	assert.Equal(t, []string{
		"real: " + describePrompt + ": ",
		filepath.Join("real", "f") + ": " + describePrompt + ": ",
	}, h.script.Messages)

	h = newHarness()
	require.NoError(t, Print(h.env, root))
	assert.True(t, strings.HasSuffix(h.out.String(), " // via link\nlink\nreal\n  "+filepath.Join("real", "f")+"\n"), "got %q", h.out.String())
}

func TestEdit_Errors(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(""))
	h := newHarness("x")

	err := Edit(h.env, filepath.Join(root, "missing.go"))
	assert.ErrorIs(t, err, relpath.ErrNotExist)

	err = Edit(h.env, root)
	assert.ErrorIs(t, err, store.ErrRootPath)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	root := newTree(t, contents(`"src" = "sources"`+"\n"+`"src/main.go" = "entry point"`), "README.md", "src/main.go")

	h := newHarness()
	require.NoError(t, Print(h.env, root))
	want := "Using " + filepath.Join(root, store.FileName) + "\n" +
		"README.md\n" +
		" // sources\n" +
		"src\n" +
		"   // entry point\n" +
		"  " + filepath.Join("src", "main.go") + "\n"
	assert.Equal(t, want, h.out.String())

	h = newHarness()
	h.env.Inline = true
	require.NoError(t, Print(h.env, root))
	assert.True(t, strings.HasSuffix(h.out.String(), "src // sources\n  "+filepath.Join("src", "main.go")+" // entry point\n"))
}

func TestPrint_NotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for cur := dir; ; cur = filepath.Dir(cur) {
		if _, err := os.Stat(filepath.Join(cur, store.FileName)); err == nil {
			t.Skipf("a store file exists above the temp dir in %s", cur)
		}
		if filepath.Dir(cur) == cur {
			break
		}
	}

	err := Print(newHarness().env, dir)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWatch_RerendersOnChange(t *testing.T) {
	root := newTree(t, contents(""), "a.go")
	h := newHarness()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, h.env, root, 20*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return strings.Contains(h.out.String(), "a.go\n")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), nil, 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(h.out.String(), "b.go\n")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
