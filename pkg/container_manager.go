package pkg

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/cunningt/fuse-bxms-integ/pkg/karaf"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/hashicorp/go-version"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	ContainerHomeDir = "/opt/karaf"
	ImageJava8       = "eclipse-temurin:8-jre"
	ImageJava11      = "eclipse-temurin:11-jre"
	ImageJava17      = "eclipse-temurin:17-jre"
)

// vendor builds like '2.4.0.redhat-630187' are compared by their numeric release only
var karafReleaseRegex = regexp.MustCompile(`^\d+(\.\d+){0,2}`)

// imageConstraints are checked in order, the first one met wins
var imageConstraints = []struct {
	constraint string
	image      string
}{
	{"< 4.0", ImageJava8},
	{">= 4.0, < 4.3", ImageJava11},
	{">= 4.3", ImageJava17},
}

// ContainerManager runs prepared Karaf home inside a Docker container
type ContainerManager struct {
	kit *Kit

	Image          string
	StartupTimeout time.Duration
	Env            []string
	HTTPPort       int
	User           string
	Password       string
}

func NewContainerManager(kit *Kit) *ContainerManager {
	cv := kit.config.Values()

	return &ContainerManager{
		kit: kit,

		Image:          cv.Karaf.Container.Image,
		StartupTimeout: cv.Karaf.Container.StartupTimeout,
		Env:            cv.Karaf.Container.Env,
		HTTPPort:       cv.Karaf.HTTPPort,
		User:           cv.Karaf.User,
		Password:       cv.Karaf.Password,
	}
}

// ImageFor picks JRE image matching the Java requirements of a Karaf version, unless image is configured explicitly.
func (cm *ContainerManager) ImageFor(karafVersion string) (string, error) {
	if cm.Image != "" {
		return cm.Image, nil
	}
	release := karafReleaseRegex.FindString(karafVersion)
	if release == "" {
		return "", fmt.Errorf("cannot parse Karaf version '%s'; expected it to start with release number", karafVersion)
	}
	current, err := version.NewVersion(release)
	if err != nil {
		return "", fmt.Errorf("cannot parse Karaf version '%s': %w", karafVersion, err)
	}
	for _, ic := range imageConstraints {
		constraints, err := version.NewConstraint(ic.constraint)
		if err != nil {
			return "", fmt.Errorf("image constraint '%s' is invalid: %w", ic.constraint, err)
		}
		if constraints.Check(current) {
			return ic.image, nil
		}
	}
	return "", fmt.Errorf("cannot pick image for Karaf version '%s'", karafVersion)
}

func (cm *ContainerManager) env() (map[string]string, error) {
	result := map[string]string{"KARAF_HOME": ContainerHomeDir}
	for _, entry := range cm.Env {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("cannot parse container env var '%s'; expected format 'KEY=value'", entry)
		}
		result[key] = value
	}
	return result, nil
}

func (cm *ContainerManager) port() nat.Port {
	return nat.Port(fmt.Sprintf("%d/tcp", cm.HTTPPort))
}

// Request describes the container to be started without starting it.
func (cm *ContainerManager) Request(distribution *Distribution) (*testcontainers.ContainerRequest, error) {
	image, err := cm.ImageFor(distribution.Option.KarafVersion)
	if err != nil {
		return nil, err
	}
	env, err := cm.env()
	if err != nil {
		return nil, err
	}
	binds := []string{distribution.Home.Dir + ":" + ContainerHomeDir}
	localRepo := cm.kit.mavenManager.LocalRepoDir()
	if pathx.Exists(localRepo) {
		binds = append(binds, localRepo+":"+localRepo)
	}
	return &testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{string(cm.port())},
		Env:          env,
		WorkingDir:   ContainerHomeDir,
		Cmd:          []string{ContainerHomeDir + "/bin/karaf", "server"},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Binds = append(hc.Binds, binds...)
		},
		LogConsumerCfg: &testcontainers.LogConsumerConfig{
			Consumers: []testcontainers.LogConsumer{&containerLogConsumer{home: distribution.Home}},
		},
		WaitingFor: wait.ForHTTP(BundlesPathJson).
			WithPort(cm.port()).
			WithBasicAuth(cm.User, cm.Password).
			WithStartupTimeout(cm.StartupTimeout),
	}, nil
}

func (cm *ContainerManager) Launch(ctx context.Context, distribution *Distribution) (*Container, error) {
	req, err := cm.Request(distribution)
	if err != nil {
		return nil, err
	}
	log.Infof("%s: launching container using image '%s'", distribution.Home, req.Image)
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: *req,
		Started:          true,
	})
	if err != nil {
		if ctr != nil {
			terminateDetached(ctr)
		}
		return nil, fmt.Errorf("%s: cannot launch container: %w", distribution.Home, err)
	}
	host, err := ctr.Host(ctx)
	if err != nil {
		terminateDetached(ctr)
		return nil, fmt.Errorf("%s: cannot determine container host: %w", distribution.Home, err)
	}
	mapped, err := ctr.MappedPort(ctx, cm.port())
	if err != nil {
		terminateDetached(ctr)
		return nil, fmt.Errorf("%s: cannot determine container HTTP port: %w", distribution.Home, err)
	}
	result := &Container{
		kit:          cm.kit,
		container:    ctr,
		Distribution: distribution,
		HTTPURL:      fmt.Sprintf("http://%s:%s", host, mapped.Port()),
	}
	log.Infof("%s: container launched and serving at '%s'", distribution.Home, result.HTTPURL)
	return result, nil
}

type terminator interface {
	Terminate(ctx context.Context, opts ...testcontainers.TerminateOption) error
}

// terminateDetached cleans up after failed launch, launch context may be cancelled already
func terminateDetached(ctr terminator) {
	if err := ctr.Terminate(context.Background()); err != nil {
		log.Warnf("cannot terminate container after failed launch: %s", err)
	}
}

// Container is a running Karaf
type Container struct {
	kit       *Kit
	container testcontainers.Container

	Distribution *Distribution `yaml:"distribution" json:"distribution"`
	HTTPURL      string        `yaml:"http_url" json:"httpUrl"`
}

func (c *Container) Home() *karaf.Home {
	return c.Distribution.Home
}

func (c *Container) HTTP() *HTTP {
	return NewHTTP(c.kit, c.HTTPURL)
}

func (c *Container) BundleManager() *OSGiBundleManager {
	return NewOSGiBundleManager(c.kit, c.HTTP())
}

func (c *Container) Terminate(ctx context.Context) error {
	if c.container == nil {
		return nil
	}
	log.Infof("%s: terminating container", c.Home())
	if err := c.container.Terminate(ctx); err != nil {
		return fmt.Errorf("%s: cannot terminate container: %w", c.Home(), err)
	}
	return nil
}

func (c *Container) MarshalText() string {
	return fmt.Sprintf("home: %s\nhttp url: %s\n", c.Home().Dir, c.HTTPURL)
}

type containerLogConsumer struct {
	home *karaf.Home
}

func (c *containerLogConsumer) Accept(l testcontainers.Log) {
	for _, line := range lo.Compact(strings.Split(string(l.Content), "\n")) {
		log.Debugf("%s: %s", c.home, line)
	}
}
