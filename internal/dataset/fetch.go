package dataset

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/fsutil"
)

// DefaultCorpusURL is the published Ubuntu Dialogue Corpus archive.
const DefaultCorpusURL = "http://cs.mcgill.ca/~jpineau/datasets/ubuntu-corpus-1.0/ubuntu_dialogs.tgz"

// FetchCorpus downloads and unpacks the corpus archive into directory,
// unless an unpacked dialogs tree is already present. The download only
// happens when the caller explicitly asked for it; callers that did not
// pass -fetch never reach this function.
func FetchCorpus(ctx context.Context, client *http.Client, url, directory string) error {
	logger := ctxlog.FromContext(ctx)

	dialogsPath := filepath.Join(directory, "dialogs")
	if info, err := os.Stat(dialogsPath); err == nil && info.IsDir() {
		logger.Info("Dialogs already unpacked, skipping download.", "path", dialogsPath)
		return nil
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	archivePath := filepath.Join(directory, filepath.Base(url))
	if !fsutil.FileExists(archivePath) {
		if err := download(ctx, client, url, archivePath); err != nil {
			return err
		}
	}

	logger.Info("Unpacking dialogs.", "archive", archivePath)
	if err := untarGz(archivePath, directory); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", archivePath, err)
	}
	logger.Info("Archive unpacked.")
	return nil
}

// download streams the archive to disk.
func download(ctx context.Context, client *http.Client, url, dest string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Downloading corpus archive.", "url", url, "dest", dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download corpus: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("corpus download returned status %s", resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	logger.Info("Download complete.")
	return nil
}

// untarGz extracts a .tgz archive under dest, rejecting entries that
// would escape it.
func untarGz(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dest, filepath.Clean(hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}
