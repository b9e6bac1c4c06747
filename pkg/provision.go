package pkg

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	log "github.com/sirupsen/logrus"
)

const (
	CamelKarafGroupID    = "org.apache.camel.karaf"
	CamelKarafArtifactID = "apache-camel"

	BrmsFeaturesGroupID    = "org.apache.karaf.assemblies.features"
	BrmsFeaturesArtifactID = "brms-features"

	DroolsFeaturesGroupID    = "org.jboss.integration.fuse"
	DroolsFeaturesArtifactID = "karaf-features"

	DroolsRepoGroupID    = "org.drools"
	DroolsRepoArtifactID = "drools-karaf-features"

	KarafGroupID    = "org.apache.karaf"
	KarafArtifactID = "apache-karaf"

	FeaturesType       = "xml"
	FeaturesClassifier = "features"
	DistributionType   = "tar.gz"

	DroolsModuleFeature = "drools-module"
	LocalRepositoryID   = "local"
)

// Provisioner builds the options that put Karaf, Camel and Drools/BRMS features together
type Provisioner struct {
	kit *Kit

	KarafVersion     string
	KarafName        string
	UnpackDir        string
	UseDeployFolder  bool
	LocalRepo        string
	Repositories     []string
	DroolsClassifier string
	CamelVersion     string
	CamelFeatures    []string
	DependenciesFile string
	VersionOverrides []string

	versionsOnce sync.Once
	versions     *maven.Versions
	versionsErr  error
}

func NewProvisioner(kit *Kit) *Provisioner {
	cv := kit.config.Values()

	return &Provisioner{
		kit: kit,

		KarafVersion:     cv.Karaf.Version,
		KarafName:        cv.Karaf.Name,
		UnpackDir:        cv.Karaf.UnpackDir,
		UseDeployFolder:  cv.Karaf.UseDeployFolder,
		LocalRepo:        cv.Maven.LocalRepo,
		Repositories:     cv.Maven.Repositories,
		DroolsClassifier: cv.Drools.FeaturesClassifier,
		CamelVersion:     cv.Camel.Version,
		CamelFeatures:    cv.Camel.Features,
		DependenciesFile: cv.Maven.DependenciesFile,
		VersionOverrides: cv.Maven.Versions,
	}
}

// Versions are the project dependency versions, loaded once.
func (p *Provisioner) Versions() (*maven.Versions, error) {
	p.versionsOnce.Do(func() {
		if p.versions != nil {
			return
		}
		p.versions, p.versionsErr = maven.LoadVersions(p.DependenciesFile, p.VersionOverrides)
	})
	return p.versions, p.versionsErr
}

func (p *Provisioner) SetVersions(versions *maven.Versions) {
	p.versions = versions
	p.versionsErr = nil
}

func (p *Provisioner) inProject(artifact maven.Artifact) (maven.Artifact, error) {
	versions, err := p.Versions()
	if err != nil {
		return artifact, err
	}
	return versions.Resolve(artifact)
}

// FeatureURL is a plain artifact reference without version, type and classifier.
func (p *Provisioner) FeatureURL(groupID, artifactID string) maven.Artifact {
	return maven.NewArtifact(groupID, artifactID)
}

// CamelKarafFeatureURL points to Camel features descriptor; empty version means the one used by the project.
func (p *Provisioner) CamelKarafFeatureURL(version string) (maven.Artifact, error) {
	artifact := p.FeatureURL(CamelKarafGroupID, CamelKarafArtifactID).
		WithType(FeaturesType).
		WithClassifier(FeaturesClassifier)
	if version == "" {
		version = p.CamelVersion
	}
	if version != "" {
		return artifact.WithVersion(version), nil
	}
	return p.inProject(artifact)
}

func (p *Provisioner) LoadCamelFeatures(features ...string) (karaf.Option, error) {
	repo, err := p.CamelKarafFeatureURL("")
	if err != nil {
		return nil, fmt.Errorf("cannot load Camel features: %w", err)
	}
	all := append(append([]string{}, p.CamelFeatures...), features...)
	return karaf.Features(repo.URL(), all...), nil
}

func (p *Provisioner) brmsFeaturesURL() (maven.Artifact, error) {
	return p.inProject(p.FeatureURL(BrmsFeaturesGroupID, BrmsFeaturesArtifactID).
		WithType(FeaturesType).
		WithClassifier(FeaturesClassifier))
}

func (p *Provisioner) LoadBrmsFeatures(features ...string) (karaf.Option, error) {
	repo, err := p.brmsFeaturesURL()
	if err != nil {
		return nil, fmt.Errorf("cannot load BRMS features: %w", err)
	}
	return karaf.Features(repo.URL(), append([]string{DroolsModuleFeature}, features...)...), nil
}

func (p *Provisioner) LoadDroolsFeatures(features ...string) (karaf.Option, error) {
	repo, err := p.inProject(p.FeatureURL(DroolsFeaturesGroupID, DroolsFeaturesArtifactID).
		WithType(FeaturesType).
		WithClassifier(FeaturesClassifier))
	if err != nil {
		return nil, fmt.Errorf("cannot load Drools features: %w", err)
	}
	return karaf.Features(repo.URL(), append([]string{DroolsModuleFeature}, features...)...), nil
}

func (p *Provisioner) LoadBrmsRepo() (karaf.Option, error) {
	repo, err := p.brmsFeaturesURL()
	if err != nil {
		return nil, fmt.Errorf("cannot load BRMS features repository: %w", err)
	}
	return karaf.FeaturesRepository(repo.URL()), nil
}

func (p *Provisioner) LoadDroolsRepo() (karaf.Option, error) {
	repo, err := p.inProject(p.FeatureURL(DroolsRepoGroupID, DroolsRepoArtifactID).
		WithType(FeaturesType).
		WithClassifier(p.DroolsClassifier))
	if err != nil {
		return nil, fmt.Errorf("cannot load Drools features repository: %w", err)
	}
	return karaf.FeaturesRepository(repo.URL()), nil
}

// FrameworkURL is the Karaf distribution archive; version as in project, otherwise the configured one.
func (p *Provisioner) FrameworkURL() maven.Artifact {
	artifact := p.FeatureURL(KarafGroupID, KarafArtifactID).WithType(DistributionType)
	if versions, err := p.Versions(); err == nil {
		if version, ok := versions.Find(artifact); ok {
			return artifact.WithVersion(version)
		}
	} else {
		log.Warnf("cannot read project versions, using Karaf version '%s': %s", p.KarafVersion, err)
	}
	return artifact.WithVersion(p.KarafVersion)
}

// MavenRepositories is the value for pax-url-aether repositories list, local repository goes first.
func (p *Provisioner) MavenRepositories() (string, error) {
	var repos []maven.Repository
	if p.LocalRepo != "" {
		localRepo, err := filepath.Abs(p.LocalRepo)
		if err != nil {
			return "", fmt.Errorf("cannot determine absolute path of local Maven repository '%s': %w", p.LocalRepo, err)
		}
		log.Infof("Using alternative local Maven repository in %s.", localRepo)
		repos = append(repos, maven.Repository{URL: localRepo, ID: LocalRepositoryID, Releases: true})
	}
	for _, value := range p.Repositories {
		parsed, err := maven.ParseRepositories(value)
		if err != nil {
			return "", err
		}
		repos = append(repos, parsed...)
	}
	return maven.RepositoriesString(repos), nil
}

func (p *Provisioner) KarafDistributionOption() (karaf.Option, error) {
	log.Infof("*** The karaf version is %s ***", p.KarafVersion)
	repositories, err := p.MavenRepositories()
	if err != nil {
		return nil, fmt.Errorf("cannot configure Karaf distribution: %w", err)
	}
	return karaf.Composite(
		karaf.DistributionOption{
			FrameworkURL:    p.FrameworkURL(),
			KarafVersion:    p.KarafVersion,
			Name:            p.KarafName,
			UseDeployFolder: p.UseDeployFolder,
			UnpackDir:       p.UnpackDir,
		},
		karaf.ConfigFilePut(karaf.MavenConfigFile, karaf.MavenRepositoriesKey, repositories),
	), nil
}

// ProvisionOpts selects feature sets to be provisioned, nil slice means not requested.
type ProvisionOpts struct {
	Camel      []string
	Brms       []string
	Drools     []string
	BrmsRepo   bool
	DroolsRepo bool
}

// Options combines the distribution with the requested feature sets.
func (p *Provisioner) Options(opts ProvisionOpts) (karaf.CompositeOption, error) {
	distribution, err := p.KarafDistributionOption()
	if err != nil {
		return karaf.CompositeOption{}, err
	}
	var builders []func() (karaf.Option, error)
	if opts.Camel != nil {
		builders = append(builders, func() (karaf.Option, error) { return p.LoadCamelFeatures(opts.Camel...) })
	}
	if opts.BrmsRepo {
		builders = append(builders, p.LoadBrmsRepo)
	}
	if opts.Brms != nil {
		builders = append(builders, func() (karaf.Option, error) { return p.LoadBrmsFeatures(opts.Brms...) })
	}
	if opts.DroolsRepo {
		builders = append(builders, p.LoadDroolsRepo)
	}
	if opts.Drools != nil {
		builders = append(builders, func() (karaf.Option, error) { return p.LoadDroolsFeatures(opts.Drools...) })
	}
	result := []karaf.Option{distribution}
	for _, builder := range builders {
		option, err := builder()
		if err != nil {
			return karaf.CompositeOption{}, err
		}
		result = append(result, option)
	}
	return karaf.Composite(result...), nil
}
