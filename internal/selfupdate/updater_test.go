package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelease serves one GitHub release: the latest-release API document,
// the archive for this platform and its checksum manifest.
type fakeRelease struct {
	tag      string
	archive  []byte
	manifest string
}

func (f fakeRelease) serve(t *testing.T) *httptest.Server {
	t.Helper()
	a, err := assetFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/abhisek/quizgen/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"` + f.tag + `","html_url":"https://example.com/` + f.tag + `"}`))
	})
	dir := "/abhisek/quizgen/releases/download/" + f.tag + "/"
	if f.archive != nil {
		mux.HandleFunc(dir+a.name, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(f.archive)
		})
	}
	if f.manifest != "" {
		mux.HandleFunc(dir+checksumsFile, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(f.manifest))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func platformArchive(t *testing.T, content []byte) ([]byte, string) {
	t.Helper()
	a, err := assetFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	var data []byte
	if a.kind == zipped {
		data = zipOf(t, a.binary, content)
	} else {
		data = tarGzOf(t, a.binary, content)
	}
	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]) + "  " + a.name + "\n"
}

func TestAssetFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		binary       string
	}{
		{"darwin", "arm64", "quizgen_Darwin_all.tar.gz", "quizgen"},
		{"darwin", "amd64", "quizgen_Darwin_all.tar.gz", "quizgen"},
		{"linux", "amd64", "quizgen_Linux_x86_64.tar.gz", "quizgen"},
		{"linux", "386", "quizgen_Linux_i386.tar.gz", "quizgen"},
		{"windows", "arm64", "quizgen_Windows_arm64.zip", "quizgen.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			a, err := assetFor(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.name)
			assert.Equal(t, tt.binary, a.binary)
		})
	}

	_, err := assetFor("plan9", "amd64")
	assert.ErrorContains(t, err, "operating system")
	_, err = assetFor("linux", "mips")
	assert.ErrorContains(t, err, "architecture")
}

func TestExpectedSum(t *testing.T) {
	manifest := []byte("abc123  quizgen_Linux_x86_64.tar.gz\nnot a line\n\ndef456  quizgen_Darwin_all.tar.gz\n")

	sum, err := expectedSum(manifest, "quizgen_Darwin_all.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "def456", sum)

	_, err = expectedSum(manifest, "quizgen_Windows_arm64.zip")
	assert.ErrorContains(t, err, "no checksum found")
}

func TestCheckSum(t *testing.T) {
	data := []byte("quiz")
	sum := sha256.Sum256(data)

	assert.NoError(t, checkSum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, checkSum(data, "00"), ErrChecksum)
}

func TestUnpack(t *testing.T) {
	content := []byte("binary")

	got, err := unpack(asset{name: "a.tar.gz", binary: "quizgen", kind: tarGz}, tarGzOf(t, "dist/quizgen", content))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = unpack(asset{name: "a.zip", binary: "quizgen.exe", kind: zipped}, zipOf(t, "quizgen.exe", content))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = unpack(asset{name: "a.tar.gz", binary: "quizgen", kind: tarGz}, tarGzOf(t, "README.md", content))
	assert.ErrorContains(t, err, "not found")

	_, err = unpack(asset{name: "a.tar.gz", binary: "quizgen", kind: tarGz}, []byte("garbage"))
	assert.ErrorContains(t, err, "gzip")
}

func TestReplaceExecutable(t *testing.T) {
	target := filepath.Join(t.TempDir(), "quizgen")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, replaceExecutable(target, []byte("new")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging file left behind")
}

func TestReplaceExecutableMissingTarget(t *testing.T) {
	err := replaceExecutable(filepath.Join(t.TempDir(), "missing"), []byte("new"))
	assert.ErrorContains(t, err, "stat target")
}

func TestUpdate(t *testing.T) {
	content := []byte("quizgen v2")
	archive, manifest := platformArchive(t, content)

	t.Run("installs the latest release", func(t *testing.T) {
		exe := filepath.Join(t.TempDir(), "quizgen")
		require.NoError(t, os.WriteFile(exe, []byte("quizgen v1"), 0o755))
		srv := fakeRelease{tag: "v2.0.0", archive: archive, manifest: manifest}.serve(t)

		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return exe, nil }))

		var stages []string
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(exe)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, []string{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("target version skips the lookup", func(t *testing.T) {
		exe := filepath.Join(t.TempDir(), "quizgen")
		require.NoError(t, os.WriteFile(exe, []byte("quizgen v1"), 0o755))
		srv := fakeRelease{tag: "v2.0.0", archive: archive, manifest: manifest}.serve(t)

		c := NewChecker(WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return exe, nil }))

		var stages []string
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v2.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)
		assert.NotContains(t, stages, StageCheck)
	})

	t.Run("development build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := fakeRelease{tag: "v1.0.0"}.serve(t)
		err := NewChecker(WithBaseURL(srv.URL)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		a, err := assetFor(runtime.GOOS, runtime.GOARCH)
		require.NoError(t, err)
		srv := fakeRelease{tag: "v2.0.0", archive: archive, manifest: "0000  " + a.name + "\n"}.serve(t)

		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("missing archive", func(t *testing.T) {
		srv := fakeRelease{tag: "v2.0.0"}.serve(t)

		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorContains(t, err, "download archive")
	})
}

func tarGzOf(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipOf(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
