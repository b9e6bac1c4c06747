package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

type DownloadOpts struct {
	URL      string
	File     string
	Override bool

	AuthBasicUser     string
	AuthBasicPassword string
}

// ErrNotFound is returned when remote server responds with 404 so that callers may try other sources.
var ErrNotFound = fmt.Errorf("remote file not found")

func client(opts DownloadOpts) *resty.Client {
	result := resty.New()
	result.SetDoNotParseResponse(true)
	if len(opts.AuthBasicUser) > 0 && len(opts.AuthBasicPassword) > 0 {
		result.SetBasicAuth(opts.AuthBasicUser, opts.AuthBasicPassword)
	}
	return result
}

func DownloadWithOpts(ctx context.Context, opts DownloadOpts) error {
	if len(opts.URL) == 0 {
		return fmt.Errorf("source URL of downloaded file is not specified")
	}
	if len(opts.File) == 0 {
		return fmt.Errorf("destination for downloaded file is not specified")
	}
	if pathx.Exists(opts.File) && !opts.Override {
		return fmt.Errorf("destination for downloaded file already exist")
	}
	fileTmp := opts.File + ".tmp"
	if err := pathx.DeleteIfExists(fileTmp); err != nil {
		return fmt.Errorf("cannot delete temporary file for downloaded from URL '%s' to '%s': %s", opts.URL, opts.File, err)
	}
	defer func() { _ = pathx.DeleteIfExists(fileTmp) }()
	if err := pathx.Ensure(filepath.Dir(fileTmp)); err != nil {
		return err
	}
	res, err := client(opts).R().SetContext(ctx).Get(opts.URL)
	if err != nil {
		return fmt.Errorf("cannot download from URL '%s' to file '%s': %w", opts.URL, opts.File, err)
	}
	defer res.RawBody().Close()
	if res.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("cannot download from URL '%s' to file '%s': %w", opts.URL, opts.File, ErrNotFound)
	}
	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("cannot download from URL '%s' to file '%s': %s", opts.URL, opts.File, res.Status())
	}
	fhTmp, err := os.Create(fileTmp)
	if err != nil {
		return fmt.Errorf("cannot download from URL '%s' as file '%s' cannot be written", opts.URL, opts.File)
	}
	length := res.RawResponse.ContentLength
	if length > 0 {
		log.Debugf("downloading %s from URL '%s'", humanize.Bytes(uint64(length)), opts.URL)
	}
	if color.NoColor || length <= 0 {
		if _, err := io.Copy(fhTmp, res.RawBody()); err != nil {
			fhTmp.Close()
			return fmt.Errorf("cannot download from URL '%s' to file '%s': %w", opts.URL, opts.File, err)
		}
	} else {
		bar := pb.Full.Start64(length)
		if _, err := io.Copy(bar.NewProxyWriter(fhTmp), res.RawBody()); err != nil {
			fhTmp.Close()
			return fmt.Errorf("cannot download from URL '%s' to file '%s': %w", opts.URL, opts.File, err)
		}
		bar.Finish()
	}
	fhTmp.Close()
	err = os.Rename(fileTmp, opts.File)
	if err != nil {
		return fmt.Errorf("cannot move downloaded file from temporary path '%s' to target one '%s': %s", fileTmp, opts.File, err)
	}
	return nil
}

// ReadString fetches small text resources like checksums; returns ErrNotFound on 404.
func ReadString(ctx context.Context, opts DownloadOpts) (string, error) {
	res, err := client(opts).R().SetContext(ctx).Get(opts.URL)
	if err != nil {
		return "", fmt.Errorf("cannot read from URL '%s': %w", opts.URL, err)
	}
	defer res.RawBody().Close()
	if res.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("cannot read from URL '%s': %w", opts.URL, ErrNotFound)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("cannot read from URL '%s': %s", opts.URL, res.Status())
	}
	bytes, err := io.ReadAll(res.RawBody())
	if err != nil {
		return "", fmt.Errorf("cannot read from URL '%s': %w", opts.URL, err)
	}
	return string(bytes), nil
}
