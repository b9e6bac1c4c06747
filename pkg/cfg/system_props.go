package cfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/magiconair/properties"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SystemPropsFileDefault = common.ConfigDir + "/system.properties"
	SystemPropsFileEnvVar  = "KIT_SYSTEM_PROPS_FILE"
	JavaOptsEnvVar         = "KIT_JAVA_OPTS"

	SystemPropKarafVersion     = "karafVersion"
	SystemPropMavenLocalRepo   = "maven.repo.local"
	SystemPropDroolsClassifier = "drools.karaf.features.classifier"
)

// SystemPropKeys maps Java system properties known from Maven/Pax-Exam builds to config keys
func SystemPropKeys() map[string]string {
	return map[string]string{
		SystemPropKarafVersion:     "karaf.version",
		SystemPropMavenLocalRepo:   "maven.local_repo",
		SystemPropDroolsClassifier: "drools.features_classifier",
	}
}

// systemPropsEmptyAllowed are honoured even when set to empty value, e.g. no features classifier
func systemPropsEmptyAllowed() []string {
	return []string{SystemPropDroolsClassifier}
}

func SystemPropsFile() string {
	path := os.Getenv(SystemPropsFileEnvVar)
	if path == "" {
		path = SystemPropsFileDefault
	}
	return path
}

// SystemProps reads properties file then '-Dkey=value' tokens from env var; tokens win.
func SystemProps() (*properties.Properties, error) {
	result := properties.NewProperties()
	result.DisableExpansion = true
	file := SystemPropsFile()
	if pathx.Exists(file) {
		loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		props, err := loader.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read system properties file '%s': %w", file, err)
		}
		result.Merge(props)
	}
	for k, v := range ParseJavaOpts(os.Getenv(JavaOptsEnvVar)) {
		if _, _, err := result.Set(k, v); err != nil {
			return nil, fmt.Errorf("cannot set system property '%s': %w", k, err)
		}
	}
	return result, nil
}

// ParseJavaOpts extracts '-Dkey=value' (or '-Dkey' meaning empty value) tokens.
func ParseJavaOpts(opts string) map[string]string {
	result := map[string]string{}
	for _, token := range strings.Fields(opts) {
		if !strings.HasPrefix(token, "-D") {
			continue
		}
		key, value, _ := strings.Cut(strings.TrimPrefix(token, "-D"), "=")
		if key != "" {
			result[key] = value
		}
	}
	return result
}

func readFromSystemProps(v *viper.Viper) error {
	props, err := SystemProps()
	if err != nil {
		return err
	}
	for prop, key := range SystemPropKeys() {
		value, ok := props.Get(prop)
		if !ok || (value == "" && !lo.Contains(systemPropsEmptyAllowed(), prop)) {
			continue
		}
		log.Debugf("using system property '%s' as config '%s'", prop, key)
		v.Set(key, value)
	}
	return nil
}
