package pkg

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/filex"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/httpx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	log "github.com/sirupsen/logrus"
)

const (
	SnapshotVersionSuffix = "-SNAPSHOT"
	ChecksumExtension     = ".sha1"
	FileURLPrefix         = "file:"
)

// MavenManager resolves artifact files from the local repository, downloading them when missing
type MavenManager struct {
	kit *Kit

	LocalRepo      string
	Repositories   []string
	VerifyChecksum bool
}

func NewMavenManager(kit *Kit) *MavenManager {
	cv := kit.config.Values()

	return &MavenManager{
		kit: kit,

		LocalRepo:      cv.Maven.LocalRepo,
		Repositories:   cv.Maven.Repositories,
		VerifyChecksum: cv.Maven.VerifyChecksum,
	}
}

func (mm *MavenManager) LocalRepoDir() string {
	if mm.LocalRepo != "" {
		return pathx.Abs(mm.LocalRepo)
	}
	return filepath.Join(pathx.Home(), ".m2", "repository")
}

func (mm *MavenManager) RemoteRepositories() ([]maven.Repository, error) {
	var result []maven.Repository
	for _, value := range mm.Repositories {
		repos, err := maven.ParseRepositories(value)
		if err != nil {
			return nil, err
		}
		result = append(result, repos...)
	}
	return result, nil
}

// Resolve returns path to the artifact file in the local repository.
func (mm *MavenManager) Resolve(ctx context.Context, artifact maven.Artifact) (string, error) {
	if err := artifact.Validate(); err != nil {
		return "", err
	}
	localFile := filepath.Join(mm.LocalRepoDir(), filepath.FromSlash(artifact.Path()))
	if pathx.Exists(localFile) {
		log.Debugf("resolved Maven artifact '%s' from local repository '%s'", artifact.URL(), localFile)
		return localFile, nil
	}
	repos, err := mm.RemoteRepositories()
	if err != nil {
		return "", err
	}
	snapshot := strings.HasSuffix(artifact.Version, SnapshotVersionSuffix)
	var errs []error
	for _, repo := range repos {
		if (snapshot && !repo.Snapshots) || (!snapshot && !repo.Releases) {
			continue
		}
		file, err := mm.resolveFrom(ctx, repo, artifact, localFile)
		if err == nil {
			return file, nil
		}
		if errors.Is(err, httpx.ErrNotFound) {
			log.Debugf("Maven artifact '%s' not found in repository '%s'", artifact.URL(), repo.ID)
			continue
		}
		log.Warnf("cannot resolve Maven artifact '%s' from repository '%s': %s", artifact.URL(), repo.ID, err)
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("cannot resolve Maven artifact '%s': %w", artifact.URL(), errors.Join(errs...))
	}
	return "", fmt.Errorf("cannot resolve Maven artifact '%s' as it is not available in any repository", artifact.URL())
}

func (mm *MavenManager) resolveFrom(ctx context.Context, repo maven.Repository, artifact maven.Artifact, localFile string) (string, error) {
	if !strings.HasPrefix(repo.URL, "http://") && !strings.HasPrefix(repo.URL, "https://") {
		dirFile := filepath.Join(strings.TrimPrefix(repo.URL, FileURLPrefix), filepath.FromSlash(artifact.Path()))
		if !pathx.Exists(dirFile) {
			return "", httpx.ErrNotFound
		}
		return dirFile, nil
	}
	url := repo.ArtifactURL(artifact)
	log.Infof("downloading Maven artifact '%s' from '%s'", artifact.URL(), url)
	if err := httpx.DownloadWithOpts(ctx, httpx.DownloadOpts{URL: url, File: localFile, Override: true}); err != nil {
		return "", err
	}
	if mm.VerifyChecksum {
		if err := mm.verify(ctx, url, localFile); err != nil {
			_ = pathx.DeleteIfExists(localFile)
			return "", err
		}
	}
	log.Infof("downloaded Maven artifact '%s' to '%s'", artifact.URL(), localFile)
	return localFile, nil
}

func (mm *MavenManager) verify(ctx context.Context, url string, localFile string) error {
	expected, err := httpx.ReadString(ctx, httpx.DownloadOpts{URL: url + ChecksumExtension})
	if errors.Is(err, httpx.ErrNotFound) {
		log.Debugf("skipping checksum verification as it is not published for '%s'", url)
		return nil
	}
	if err != nil {
		return err
	}
	return filex.VerifySHA1(localFile, expected)
}
