package cfg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/osx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/tplx"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "KIT"
	FileDefault = common.ConfigDir + "/kit.yml"
	FileEnvVar  = "KIT_CONFIG_FILE"
)

// Config defines a place for managing input configuration from various sources (YML file, env vars, Java system properties)
type Config struct {
	viper  *viper.Viper
	values *ConfigValues
}

func (c *Config) Values() *ConfigValues {
	return c.values
}

// Value reads single value by dotted key, e.g. 'karaf.version'
func (c *Config) Value(key string) (string, error) {
	if !c.viper.IsSet(key) {
		return "", fmt.Errorf("config value '%s' is not set", key)
	}
	return cast.ToStringE(c.viper.Get(key))
}

// AllSettings is the effective config as seen by viper, including keys not known to values
func (c *Config) AllSettings() map[string]any {
	return c.viper.AllSettings()
}

// NewConfig creates a new config or exits when it cannot be read
func NewConfig() *Config {
	result, err := ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	return result
}

// ReadConfig reads all config sources; the later ones take precedence
func ReadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := readFromFile(v); err != nil {
		return nil, err
	}
	readFromEnv(v)
	if err := readFromSystemProps(v); err != nil {
		return nil, err
	}
	var values ConfigValues
	if err := v.Unmarshal(&values); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config values properly: %w", err)
	}
	return &Config{viper: v, values: &values}, nil
}

// DefaultConfig holds built-in defaults only, ignoring file, env and system properties
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var values ConfigValues
	if err := v.Unmarshal(&values); err != nil {
		log.Fatalf("cannot unmarshal default config values: %s", err)
	}
	return &Config{viper: v, values: &values}
}

func (c ConfigValues) String() string {
	yml, err := fmtx.MarshalYML(c)
	if err != nil {
		log.Errorf("cannot convert config to YML: %s", err)
	}
	return yml
}

func readFromEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
}

func readFromFile(v *viper.Viper) error {
	file := File()
	exists, err := pathx.ExistsStrict(file)
	if err != nil {
		log.Debugf("skipping reading config file '%s': %s", file, err)
		return nil
	}
	if !exists {
		log.Debugf("skipping reading config file as it does not exist '%s'", file)
		return nil
	}
	tpl, err := tplx.New(filepath.Base(file)).Delims("[[", "]]").ParseFiles(file)
	if err != nil {
		return fmt.Errorf("cannot parse config file '%s': %w", file, err)
	}
	data := map[string]any{
		"Env":  osx.EnvVarsMap(),
		"Path": pathx.Normalize(pathx.Current()),
	}
	var tplOut bytes.Buffer
	if err = tpl.Execute(&tplOut, data); err != nil {
		return fmt.Errorf("cannot render config template properly '%s': %w", file, err)
	}
	v.SetConfigType(strings.ReplaceAll(filepath.Ext(file)[1:], "yml", "yaml"))
	if err = v.ReadConfig(bytes.NewReader(tplOut.Bytes())); err != nil {
		return fmt.Errorf("cannot load config file properly '%s': %w", file, err)
	}
	return nil
}

func File() string {
	path := os.Getenv(FileEnvVar)
	if path == "" {
		path = FileDefault
	}
	return path
}

func (c *Config) FileExists() bool {
	return pathx.Exists(File())
}

func OutputFormats() []string {
	return []string{fmtx.Text, fmtx.YML, fmtx.JSON, fmtx.None}
}

func (c *Config) ConfigureLogger() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: c.values.Log.TimestampFormat,
		FullTimestamp:   c.values.Log.FullTimestamp,
		ForceColors:     !c.values.Output.NoColor,
		DisableColors:   c.values.Output.NoColor,
	})
	level, err := log.ParseLevel(c.values.Log.Level)
	if err != nil {
		log.Fatalf("unsupported log level specified: '%s'", c.values.Log.Level)
	}
	log.SetLevel(level)
}
