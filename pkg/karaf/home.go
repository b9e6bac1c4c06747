package karaf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/filex"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/magiconair/properties"
	"github.com/samber/lo"
)

const (
	FeaturesConfigFile      = "etc/org.apache.karaf.features.cfg"
	FeaturesRepositoriesKey = "featuresRepositories"
	FeaturesBootKey         = "featuresBoot"

	MavenConfigFile      = "etc/org.ops4j.pax.url.mvn.cfg"
	MavenRepositoriesKey = "org.ops4j.pax.url.mvn.repositories"

	WebConfigFile  = "etc/org.ops4j.pax.web.cfg"
	WebHTTPPortKey = "org.osgi.service.http.port"

	DeployConfigFile = "etc/org.apache.felix.fileinstall-deploy.cfg"
	DeployDir        = "deploy"

	UsersFile = "etc/users.properties"

	ListSeparator = ","
)

// Home is a Karaf installation directory, i.e. unpacked distribution.
type Home struct {
	Dir string
}

func NewHome(dir string) *Home {
	return &Home{Dir: dir}
}

func (h *Home) Path(relative string) string {
	return filepath.Join(h.Dir, filepath.FromSlash(relative))
}

func (h *Home) String() string {
	return fmt.Sprintf("karaf home '%s'", h.Dir)
}

func (h *Home) Validate() error {
	if !pathx.IsDir(h.Path("etc")) {
		return fmt.Errorf("%s is invalid as it has no 'etc' dir", h)
	}
	return nil
}

func loader() *properties.Loader {
	// Karaf config values are full of '${karaf.home}' placeholders resolved by the container itself
	return &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
}

// Config reads configuration file (Karaf '.cfg' is a properties file). Missing file yields empty config.
func (h *Home) Config(file string) (*properties.Properties, error) {
	path := h.Path(file)
	if !pathx.Exists(path) {
		props := properties.NewProperties()
		props.DisableExpansion = true
		return props, nil
	}
	props, err := loader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot read config file '%s': %w", h, file, err)
	}
	return props, nil
}

// EditConfig loads file, lets callback change it then saves it back preserving comments.
func (h *Home) EditConfig(file string, edit func(props *properties.Properties) error) error {
	props, err := h.Config(file)
	if err != nil {
		return err
	}
	if err := edit(props); err != nil {
		return fmt.Errorf("%s: cannot edit config file '%s': %w", h, file, err)
	}
	var buf bytes.Buffer
	if _, err := props.WriteComment(&buf, "# ", properties.UTF8); err != nil {
		return fmt.Errorf("%s: cannot serialize config file '%s': %w", h, file, err)
	}
	if err := filex.Write(h.Path(file), buf.String()); err != nil {
		return fmt.Errorf("%s: cannot save config file '%s': %w", h, file, err)
	}
	return nil
}

// ConfigValue is a shorthand for reading single value.
func (h *Home) ConfigValue(file string, key string) (string, error) {
	props, err := h.Config(file)
	if err != nil {
		return "", err
	}
	value, _ := props.Get(key)
	return value, nil
}

type FeaturesConfig struct {
	Repositories []string `yaml:"repositories" json:"repositories"`
	Boot         []string `yaml:"boot" json:"boot"`
}

func (h *Home) Features() (*FeaturesConfig, error) {
	props, err := h.Config(FeaturesConfigFile)
	if err != nil {
		return nil, err
	}
	repos, _ := props.Get(FeaturesRepositoriesKey)
	boot, _ := props.Get(FeaturesBootKey)
	return &FeaturesConfig{Repositories: listItems(repos), Boot: listItems(boot)}, nil
}

func (h *Home) ClearDeployDir() error {
	dir := h.Path(DeployDir)
	if err := pathx.DeleteIfExists(dir); err != nil {
		return err
	}
	return pathx.Ensure(dir)
}

func (h *Home) DeleteFile(file string) error {
	path := h.Path(file)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: cannot delete file '%s': %w", h, file, err)
	}
	return nil
}

// listItems splits Karaf list value; Karaf 4 boot stages like '(wrap, shell), ssh' are flattened.
func listItems(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ListSeparator) {
		item = strings.TrimSpace(strings.Trim(strings.TrimSpace(item), "()"))
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// listAppend adds values missing in comma-separated list keeping original text untouched.
func listAppend(current string, values []string) string {
	existing := listItems(current)
	var added []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || lo.Contains(existing, value) || lo.Contains(added, value) {
			continue
		}
		added = append(added, value)
	}
	if len(added) == 0 {
		return current
	}
	if strings.TrimSpace(current) == "" {
		return strings.Join(added, ListSeparator)
	}
	return strings.TrimRight(current, " ") + ListSeparator + strings.Join(added, ListSeparator)
}
