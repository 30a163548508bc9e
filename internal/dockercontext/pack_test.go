package dockercontext

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func untar(t *testing.T, r io.Reader) map[string]string {
	t.Helper()
	gz, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer gz.Close()

	tr := tar.NewReader(gz)
	out := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		out[hdr.Name] = string(content)
	}
	return out
}

func TestPackIncludesSynthesizedDockerfileUnderAGeneratedName(t *testing.T) {
	root := writeTree(t, map[string]string{"app.py": "print(1)"})

	var buf bytes.Buffer
	dockerfileName, err := Pack(&buf, root, "FROM scratch\n")
	require.NoError(t, err)

	require.Regexp(t, `^Dockerfile\.[0-9a-f-]{36}$`, dockerfileName)

	files := untar(t, &buf)
	require.Equal(t, "FROM scratch\n", files[dockerfileName])
	require.Equal(t, "print(1)", files["app.py"])
}

func TestPackHonorsIgnoreFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.py":       "ok",
		"secrets.env":   "SECRET=1",
		".dockerignore": "secrets.env\n",
	})

	var buf bytes.Buffer
	_, err := Pack(&buf, root, "FROM scratch\n", ".dockerignore")
	require.NoError(t, err)

	files := untar(t, &buf)
	require.Contains(t, files, "keep.py")
	require.NotContains(t, files, "secrets.env")
}

func TestPackPreservesSymlinksWithinRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("data"), 0o644))
	require.NoError(t, os.Symlink("real.txt", filepath.Join(root, "link.txt")))

	var buf bytes.Buffer
	_, err := Pack(&buf, root, "FROM scratch\n")
	require.NoError(t, err)

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	defer gz.Close()
	tr := tar.NewReader(gz)

	var sawLink bool
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Name == "link.txt" {
			sawLink = true
			require.Equal(t, byte(tar.TypeSymlink), hdr.Typeflag)
			require.Equal(t, "real.txt", hdr.Linkname)
		}
	}
	require.True(t, sawLink)
}
