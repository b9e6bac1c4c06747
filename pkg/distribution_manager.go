package pkg

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/filex"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/lox"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/osx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/timex"
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	DistributionCacheDir = "distribution"
	SystemRepoDir        = "system"
	AdminRole            = "admin"
)

// DistributionManager turns provisioning options into ready-to-run Karaf home
type DistributionManager struct {
	kit *Kit

	CacheDir       string
	BootFeatures   []string
	VerifyFeatures bool
	HTTPPort       int
	User           string
	Password       string
}

func NewDistributionManager(kit *Kit) *DistributionManager {
	cv := kit.config.Values()

	return &DistributionManager{
		kit: kit,

		CacheDir:       cv.Base.CacheDir,
		BootFeatures:   cv.Karaf.Features.Boot,
		VerifyFeatures: cv.Karaf.Features.Verify,
		HTTPPort:       cv.Karaf.HTTPPort,
		User:           cv.Karaf.User,
		Password:       cv.Karaf.Password,
	}
}

// Distribution is a prepared Karaf home along with the options it was made of
type Distribution struct {
	Home     *karaf.Home              `yaml:"home" json:"home"`
	Option   karaf.DistributionOption `yaml:"distribution" json:"distribution"`
	Options  []string                 `yaml:"options" json:"options"`
	Prepared time.Time                `yaml:"prepared" json:"prepared"`
}

func (d Distribution) MarshalText() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("home: %s\n", d.Home.Dir))
	sb.WriteString(fmt.Sprintf("distribution: %s\n", d.Option))
	sb.WriteString(fmt.Sprintf("prepared: %s\n", timex.HumanRelative(d.Prepared)))
	sb.WriteString("options:\n")
	for _, option := range d.Options {
		sb.WriteString(fmt.Sprintf("  - %s\n", option))
	}
	return sb.String()
}

type distributionLock struct {
	Source   string `yaml:"source"`
	Checksum string `yaml:"checksum"`
}

func (dm *DistributionManager) Prepare(ctx context.Context, options ...karaf.Option) (*Distribution, error) {
	distribution, err := karaf.FindDistribution(options...)
	if err != nil {
		return nil, err
	}
	if _, err := dm.kit.baseOpts.PrepareWithChanged(); err != nil {
		return nil, fmt.Errorf("cannot prepare kit dirs: %w", err)
	}
	archive, err := dm.kit.mavenManager.Resolve(ctx, distribution.FrameworkURL)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare %s: %w", distribution, err)
	}
	unpacked, err := dm.unpack(distribution.FrameworkURL, archive)
	if err != nil {
		return nil, err
	}
	source, err := pathx.SingleDir(unpacked)
	if err != nil {
		return nil, err
	}
	target := pathx.Abs(filepath.Join(distribution.UnpackDir, uuid.NewString()))
	if err := filex.CopyDir(source, target); err != nil {
		return nil, err
	}
	home := karaf.NewHome(target)
	if err := home.Validate(); err != nil {
		return nil, err
	}
	log.Infof("%s: applying provisioning options", home)
	applied := append(karaf.Flatten(options...), dm.ambientOptions(home)...)
	for _, option := range applied {
		log.Debugf("%s: applying %s", home, option)
		if err := option.Apply(home); err != nil {
			return nil, fmt.Errorf("%s: cannot apply %s: %w", home, option, err)
		}
	}
	if dm.VerifyFeatures {
		if err := dm.Verify(ctx, home); err != nil {
			return nil, err
		}
	}
	log.Infof("%s: prepared from %s", home, distribution)
	return &Distribution{
		Home:     home,
		Option:   *distribution,
		Options:  lo.Map(applied, func(o karaf.Option, _ int) string { return o.String() }),
		Prepared: time.Now(),
	}, nil
}

// ambientOptions makes Karaf serve web console as bundles are inspected through it.
func (dm *DistributionManager) ambientOptions(home *karaf.Home) []karaf.Option {
	result := []karaf.Option{
		karaf.ConfigFileExtend(karaf.FeaturesConfigFile, karaf.FeaturesBootKey, strings.Join(dm.BootFeatures, karaf.ListSeparator)),
		karaf.ConfigFilePut(karaf.WebConfigFile, karaf.WebHTTPPortKey, strconv.Itoa(dm.HTTPPort)),
	}
	users, err := home.Config(karaf.UsersFile)
	if err != nil {
		log.Warnf("%s: cannot read users: %s", home, err)
		return result
	}
	if _, ok := users.Get(dm.User); !ok {
		result = append(result, karaf.ConfigFilePut(karaf.UsersFile, dm.User, dm.Password+karaf.ListSeparator+AdminRole))
	}
	return result
}

func (dm *DistributionManager) unpack(artifact maven.Artifact, archive string) (string, error) {
	dir := filepath.Join(dm.CacheDir, DistributionCacheDir, strings.TrimSuffix(artifact.FileName(), "."+artifact.Extension()))
	checksum, err := filex.ChecksumSHA1(archive)
	if err != nil {
		return "", err
	}
	lock := osx.NewLock(dir+".lock.yml", func() distributionLock {
		return distributionLock{Source: artifact.URL(), Checksum: checksum}
	})
	state, err := lock.State()
	if err != nil {
		return "", err
	}
	if state.UpToDate && pathx.Exists(dir) {
		log.Debugf("reusing unpacked Karaf distribution '%s'", dir)
		return dir, nil
	}
	log.Infof("unpacking Karaf distribution '%s' to dir '%s'", archive, dir)
	if err := lock.Unlock(); err != nil {
		return "", err
	}
	if err := filex.Unpack(archive, dir); err != nil {
		return "", err
	}
	if err := lock.Lock(); err != nil {
		return "", err
	}
	return dir, nil
}

// Verify checks that every boot feature is defined in the registered features repositories.
func (dm *DistributionManager) Verify(ctx context.Context, home *karaf.Home) error {
	features, err := home.Features()
	if err != nil {
		return err
	}
	descriptors, err := dm.Descriptors(ctx, home, features.Repositories)
	if err != nil {
		return err
	}
	available := map[string]bool{}
	for _, descriptor := range descriptors {
		for _, name := range descriptor.Names() {
			available[name] = true
		}
	}
	missing := lo.Filter(features.Boot, func(f string, _ int) bool {
		name, _, _ := strings.Cut(f, "/")
		return !available[name]
	})
	if len(missing) > 0 {
		return fmt.Errorf("%s: features [%s] are not defined in any features repository", home, strings.Join(missing, ", "))
	}
	log.Infof("%s: verified %d boot features against %d features repositories", home, len(features.Boot), len(descriptors))
	return nil
}

// Descriptors reads features repositories including the nested ones; each level is resolved concurrently.
func (dm *DistributionManager) Descriptors(ctx context.Context, home *karaf.Home, repositories []string) ([]*karaf.FeaturesDescriptor, error) {
	var result []*karaf.FeaturesDescriptor
	visited := map[string]bool{}
	pending := repositories
	for len(pending) > 0 {
		level := lo.Uniq(lo.Filter(pending, func(r string, _ int) bool { return !visited[r] }))
		for _, repo := range level {
			visited[repo] = true
		}
		descriptors, err := lox.ParallelMap(ctx, level, func(ctx context.Context, repo string) (*karaf.FeaturesDescriptor, error) {
			return dm.descriptor(ctx, home, repo)
		})
		if err != nil {
			return nil, err
		}
		pending = nil
		for _, descriptor := range descriptors {
			if descriptor != nil {
				result = append(result, descriptor)
				pending = append(pending, descriptor.Repositories...)
			}
		}
	}
	return result, nil
}

func (dm *DistributionManager) descriptor(ctx context.Context, home *karaf.Home, repo string) (*karaf.FeaturesDescriptor, error) {
	if strings.Contains(repo, "${") {
		log.Warnf("%s: skipping features repository with unresolved placeholder '%s'", home, repo)
		return nil, nil
	}
	artifact, err := maven.ParseURL(repo)
	if err != nil {
		log.Warnf("%s: skipping features repository: %s", home, err)
		return nil, nil
	}
	file := filepath.Join(home.Path(SystemRepoDir), filepath.FromSlash(artifact.Path()))
	if !pathx.Exists(file) {
		file, err = dm.kit.mavenManager.Resolve(ctx, artifact)
		if err != nil {
			return nil, err
		}
	}
	return karaf.ReadFeaturesDescriptor(file)
}
