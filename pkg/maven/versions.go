package maven

import (
	"fmt"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/magiconair/properties"
	log "github.com/sirupsen/logrus"
)

const (
	// DependenciesFileDefault is where depends-maven-plugin writes project dependency versions
	DependenciesFileDefault = "target/classes/META-INF/maven/dependencies.properties"
	dependencyVersionSuffix = "/version"
)

// Versions answers 'version as in project' lookups.
type Versions struct {
	versions map[string]string
}

func NewVersions() *Versions {
	return &Versions{versions: map[string]string{}}
}

// LoadVersions reads the dependencies file if it exists then applies 'group/artifact=version' overrides on top.
func LoadVersions(file string, overrides []string) (*Versions, error) {
	result := NewVersions()
	if file != "" {
		exists, err := pathx.ExistsStrict(file)
		if err != nil {
			return nil, err
		}
		if exists {
			if err := result.ReadFile(file); err != nil {
				return nil, err
			}
		} else {
			log.Debugf("skipping reading project dependencies file as it does not exist '%s'", file)
		}
	}
	for _, override := range overrides {
		key, version, ok := strings.Cut(override, "=")
		if !ok || strings.Count(key, "/") != 1 {
			return nil, fmt.Errorf("cannot parse version override '%s'; expected format 'group/artifact=version'", override)
		}
		result.Set(strings.TrimSpace(key), strings.TrimSpace(version))
	}
	return result, nil
}

func (v *Versions) ReadFile(file string) error {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read project dependencies file '%s': %w", file, err)
	}
	for _, key := range props.Keys() {
		if !strings.HasSuffix(key, dependencyVersionSuffix) {
			continue
		}
		value, _ := props.Get(key)
		v.Set(strings.TrimSuffix(key, dependencyVersionSuffix), value)
	}
	return nil
}

func (v *Versions) Set(key string, version string) {
	v.versions[key] = version
}

func (v *Versions) Find(artifact Artifact) (string, bool) {
	version, ok := v.versions[artifact.Key()]
	return version, ok
}

// Resolve returns artifact with version taken from the project.
func (v *Versions) Resolve(artifact Artifact) (Artifact, error) {
	version, ok := v.Find(artifact)
	if !ok || version == "" {
		return artifact, fmt.Errorf("cannot resolve version of '%s'; is it a dependency of the project?", artifact.Key())
	}
	return artifact.WithVersion(version), nil
}

func (v *Versions) Len() int {
	return len(v.versions)
}
