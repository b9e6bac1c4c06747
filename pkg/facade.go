// Package pkg provides configuration and the facade for provisioning and inspecting Karaf test containers
package pkg

import (
	"io"
	"os"

	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
)

// Kit is a facade to access Karaf integration testing API
type Kit struct {
	output io.Writer
	config *cfg.Config

	baseOpts            *BaseOpts
	mavenManager        *MavenManager
	provisioner         *Provisioner
	distributionManager *DistributionManager
	containerManager    *ContainerManager
}

func DefaultKit() *Kit {
	return NewKit(cfg.NewConfig())
}

func NewKit(config *cfg.Config) *Kit {
	result := new(Kit)
	result.output = os.Stdout
	result.config = config
	result.baseOpts = NewBaseOpts(result)
	result.mavenManager = NewMavenManager(result)
	result.provisioner = NewProvisioner(result)
	result.distributionManager = NewDistributionManager(result)
	result.containerManager = NewContainerManager(result)
	return result
}

func (k *Kit) Output() io.Writer {
	return k.output
}

func (k *Kit) SetOutput(output io.Writer) {
	k.output = output
}

func (k *Kit) Config() *cfg.Config {
	return k.config
}

func (k *Kit) BaseOpts() *BaseOpts {
	return k.baseOpts
}

func (k *Kit) MavenManager() *MavenManager {
	return k.mavenManager
}

func (k *Kit) Provisioner() *Provisioner {
	return k.provisioner
}

func (k *Kit) DistributionManager() *DistributionManager {
	return k.distributionManager
}

func (k *Kit) ContainerManager() *ContainerManager {
	return k.containerManager
}

// BundleManager gives access to bundles of Karaf already running at the given URL
func (k *Kit) BundleManager(url string) *OSGiBundleManager {
	return NewOSGiBundleManager(k, NewHTTP(k, url))
}
