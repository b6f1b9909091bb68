package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeUploader struct {
	mu    sync.Mutex
	paths []string
	fail  map[string]bool
}

func (f *fakeUploader) UploadFile(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	if f.fail[filepath.Base(path)] {
		return nil, errors.New("upload failed")
	}
	return []byte(`{}`), nil
}

func (f *fakeUploader) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func startWatcher(t *testing.T, dir string, up Uploader, opts Options) (results <-chan Result, stop func()) {
	t.Helper()
	ch := make(chan Result, 16)
	opts.OnResult = func(r Result) { ch <- r }

	w, err := New(dir, up, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give fsnotify a moment to register the directory.
	time.Sleep(50 * time.Millisecond)

	return ch, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	}
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for upload")
		return Result{}
	}
}

func TestWatcher_UploadsNewImageOnce(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	results, stop := startWatcher(t, dir, up, Options{
		Extensions: []string{".png", ".jpg"},
		Settle:     30 * time.Millisecond,
	})
	defer stop()

	path := filepath.Join(dir, "card.png")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0644))
	// A second write inside the settle window collapses into one upload.
	require.NoError(t, os.WriteFile(path, []byte("one-more"), 0644))

	r := waitResult(t, results)
	assert.Equal(t, path, r.Path)
	assert.NoError(t, r.Err)

	// Later writes to an uploaded file are ignored.
	require.NoError(t, os.WriteFile(path, []byte("again"), 0644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{path}, up.calls())
}

func TestWatcher_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	results, stop := startWatcher(t, dir, up, Options{
		Extensions: []string{".png"},
		Settle:     20 * time.Millisecond,
	})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.png"), []byte("x"), 0644))
	img := filepath.Join(dir, "b.PNG")
	require.NoError(t, os.WriteFile(img, []byte("x"), 0644))

	r := waitResult(t, results)
	assert.Equal(t, img, r.Path)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{img}, up.calls())
}

func TestWatcher_FailedUploadIsRetriedOnNextWrite(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{fail: map[string]bool{"flaky.png": true}}
	results, stop := startWatcher(t, dir, up, Options{Settle: 20 * time.Millisecond})
	defer stop()

	path := filepath.Join(dir, "flaky.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	r := waitResult(t, results)
	require.Error(t, r.Err)

	up.mu.Lock()
	up.fail = nil
	up.mu.Unlock()

	require.NoError(t, os.WriteFile(path, []byte("y"), 0644))
	r = waitResult(t, results)
	assert.NoError(t, r.Err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), &fakeUploader{}, Options{})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = New(file, &fakeUploader{}, Options{})
	assert.Error(t, err)

	_, err = New(t.TempDir(), nil, Options{})
	assert.Error(t, err)
}

func TestAccepts(t *testing.T) {
	w, err := New(t.TempDir(), &fakeUploader{}, Options{Extensions: []string{".jpg", ".PNG"}})
	require.NoError(t, err)

	assert.True(t, w.Accepts("/a/b/scan.JPG"))
	assert.True(t, w.Accepts("scan.png"))
	assert.False(t, w.Accepts("scan.gif"))
	assert.False(t, w.Accepts(".scan.jpg"))
}
