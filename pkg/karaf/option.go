package karaf

import (
	"fmt"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/maven"
	"github.com/magiconair/properties"
	"github.com/samber/lo"
)

// Option is a provisioning instruction applied to Karaf home before the container is started.
type Option interface {
	Apply(home *Home) error
	String() string
}

// CompositeOption groups options; nested composites are flattened.
type CompositeOption struct {
	Options []Option `yaml:"options" json:"options"`
}

func Composite(options ...Option) CompositeOption {
	return CompositeOption{Options: Flatten(options...)}
}

func Flatten(options ...Option) []Option {
	var result []Option
	for _, option := range options {
		switch o := option.(type) {
		case nil:
			continue
		case CompositeOption:
			result = append(result, Flatten(o.Options...)...)
		case *CompositeOption:
			result = append(result, Flatten(o.Options...)...)
		default:
			result = append(result, o)
		}
	}
	return result
}

func (o CompositeOption) Apply(home *Home) error {
	for _, option := range o.Options {
		if err := option.Apply(home); err != nil {
			return err
		}
	}
	return nil
}

func (o CompositeOption) String() string {
	return fmt.Sprintf("composite [%s]", strings.Join(lo.Map(o.Options, func(o Option, _ int) string { return o.String() }), "; "))
}

// DistributionOption defines which Karaf distribution to run and how to unpack it.
type DistributionOption struct {
	FrameworkURL    maven.Artifact `yaml:"framework_url" json:"frameworkUrl"`
	KarafVersion    string         `yaml:"karaf_version" json:"karafVersion"`
	Name            string         `yaml:"name" json:"name"`
	UseDeployFolder bool           `yaml:"use_deploy_folder" json:"useDeployFolder"`
	UnpackDir       string         `yaml:"unpack_dir" json:"unpackDir"`
}

func (o DistributionOption) Apply(home *Home) error {
	if o.UseDeployFolder {
		return nil
	}
	if err := home.ClearDeployDir(); err != nil {
		return err
	}
	return home.DeleteFile(DeployConfigFile)
}

func (o DistributionOption) String() string {
	return fmt.Sprintf("distribution '%s' (%s, version %s)", o.Name, o.FrameworkURL.URL(), o.KarafVersion)
}

// FindDistribution picks the single distribution option out of the others.
func FindDistribution(options ...Option) (*DistributionOption, error) {
	var found []DistributionOption
	for _, option := range Flatten(options...) {
		switch o := option.(type) {
		case DistributionOption:
			found = append(found, o)
		case *DistributionOption:
			found = append(found, *o)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("cannot find Karaf distribution option")
	}
	if len(found) > 1 {
		return nil, fmt.Errorf("cannot use Karaf distribution as %d options are defined while exactly one is expected", len(found))
	}
	return &found[0], nil
}

// FeaturesOption registers features repository and the features to be installed at boot.
type FeaturesOption struct {
	Repository string   `yaml:"repository" json:"repository"`
	Features   []string `yaml:"features" json:"features"`
}

func Features(repository string, features ...string) FeaturesOption {
	return FeaturesOption{Repository: repository, Features: features}
}

func FeaturesRepository(repository string) FeaturesOption {
	return FeaturesOption{Repository: repository}
}

func (o FeaturesOption) Apply(home *Home) error {
	return home.EditConfig(FeaturesConfigFile, func(props *properties.Properties) error {
		if o.Repository != "" {
			if err := extendValue(props, FeaturesRepositoriesKey, []string{o.Repository}); err != nil {
				return err
			}
		}
		if len(o.Features) > 0 {
			if err := extendValue(props, FeaturesBootKey, o.Features); err != nil {
				return err
			}
		}
		return nil
	})
}

func (o FeaturesOption) String() string {
	if len(o.Features) == 0 {
		return fmt.Sprintf("features repository '%s'", o.Repository)
	}
	return fmt.Sprintf("features [%s] from repository '%s'", strings.Join(o.Features, ", "), o.Repository)
}

// ConfigFilePutOption sets a single key in a config file located relatively to Karaf home.
type ConfigFilePutOption struct {
	File  string `yaml:"file" json:"file"`
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

func ConfigFilePut(file, key, value string) ConfigFilePutOption {
	return ConfigFilePutOption{File: file, Key: key, Value: value}
}

func (o ConfigFilePutOption) Apply(home *Home) error {
	return home.EditConfig(o.File, func(props *properties.Properties) error {
		_, _, err := props.Set(o.Key, o.Value)
		return err
	})
}

func (o ConfigFilePutOption) String() string {
	return fmt.Sprintf("config '%s' put '%s' = '%s'", o.File, o.Key, o.Value)
}

// ConfigFileExtendOption appends items to comma-separated value in a config file.
type ConfigFileExtendOption struct {
	File  string `yaml:"file" json:"file"`
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

func ConfigFileExtend(file, key, value string) ConfigFileExtendOption {
	return ConfigFileExtendOption{File: file, Key: key, Value: value}
}

func (o ConfigFileExtendOption) Apply(home *Home) error {
	return home.EditConfig(o.File, func(props *properties.Properties) error {
		return extendValue(props, o.Key, strings.Split(o.Value, ListSeparator))
	})
}

func (o ConfigFileExtendOption) String() string {
	return fmt.Sprintf("config '%s' extend '%s' with '%s'", o.File, o.Key, o.Value)
}

func extendValue(props *properties.Properties, key string, values []string) error {
	current, _ := props.Get(key)
	_, _, err := props.Set(key, listAppend(current, values))
	return err
}
