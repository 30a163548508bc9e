package dockercontext

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// Pack streams root's surviving files, plus a synthesized Dockerfile, as a
// gzip'd tar suitable for the Docker Engine build endpoint. The Dockerfile
// is appended after the context's own files. The returned Dockerfile entry
// name (e.g. "Dockerfile.3fa85f64-5717-4562-b3fc-2c963f66afa6") is what
// callers must
// pass as the build request's "filename" (or BuildKit frontend attr) so
// the engine picks up the synthesized file instead of any Dockerfile that
// happens to already live in root.
func Pack(w io.Writer, root, dockerfileContents string, ignoreFilenames ...string) (dockerfileName string, err error) {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)

	dockerfileName = fmt.Sprintf("Dockerfile.%s", uuid.New().String())

	entries, err := NewWalker(root, ignoreFilenames...).Files()
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if err := addFileToTar(tw, entry); err != nil {
			return "", fmt.Errorf("packing %s: %w", entry.RelPath, err)
		}
	}

	if err := writeTarEntry(tw, dockerfileName, []byte(dockerfileContents)); err != nil {
		return "", err
	}

	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gw.Close(); err != nil {
		return "", err
	}

	return dockerfileName, nil
}

func writeTarEntry(tw *tar.Writer, name string, content []byte) error {
	header := &tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(content)),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func addFileToTar(tw *tar.Writer, entry Entry) error {
	link := ""
	if entry.Info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(entry.AbsPath)
		if err != nil {
			return err
		}
		link = target
	}

	header, err := tar.FileInfoHeader(entry.Info, link)
	if err != nil {
		return err
	}
	header.Name = entry.RelPath
	header.Uid = 0
	header.Gid = 0
	header.Uname = ""
	header.Gname = ""

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if !entry.Info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(entry.AbsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}
