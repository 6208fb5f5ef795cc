package common

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var errUnexpectedStatusCode = errors.New("unexpected status code")

// ReadAllFromURL reads all content from the URL. `maxSize` caps the amount of read bytes so that a misbehaving
// endpoint could not make us crash with an OOM.
func ReadAllFromURL(url string, maxSize int64) ([]byte, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatusCode, res.StatusCode)
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxSize))
	if err != nil {
		return nil, err
	}
	return content, nil
}

// DownloadFile streams the content of the URL to the file specified by `path`. Model checkpoints can be
// several gigabytes large, so we never buffer them in memory. The download happens via a temporary file
// which is renamed on success, so that an interrupted download cannot leave a truncated checkpoint behind.
func DownloadFile(url, path string) error {
	res, err := http.Get(url)
	if err != nil {
		return err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errUnexpectedStatusCode, res.StatusCode)
	}
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	tempPath := path + ".partial"
	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, res.Body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}
