package cfg

import "time"

// ConfigValues defines all available configuration options
type ConfigValues struct {
	Log struct {
		Level           string `mapstructure:"level" yaml:"level"`
		TimestampFormat string `mapstructure:"timestamp_format" yaml:"timestamp_format"`
		FullTimestamp   bool   `mapstructure:"full_timestamp" yaml:"full_timestamp"`
	} `mapstructure:"log" yaml:"log"`

	Base struct {
		TmpDir   string `mapstructure:"tmp_dir" yaml:"tmp_dir"`
		CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
	} `mapstructure:"base" yaml:"base"`

	Output struct {
		Format  string `mapstructure:"format" yaml:"format"`
		NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
		Value   string `mapstructure:"value" yaml:"value"`
		Query   string `mapstructure:"query" yaml:"query"`
		File    string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"output" yaml:"output"`

	HTTP struct {
		Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
		Debug           bool          `mapstructure:"debug" yaml:"debug"`
		IgnoreSSLErrors bool          `mapstructure:"ignore_ssl_errors" yaml:"ignore_ssl_errors"`
	} `mapstructure:"http" yaml:"http"`

	Maven struct {
		LocalRepo        string   `mapstructure:"local_repo" yaml:"local_repo"`
		Repositories     []string `mapstructure:"repositories" yaml:"repositories"`
		DependenciesFile string   `mapstructure:"dependencies_file" yaml:"dependencies_file"`
		Versions         []string `mapstructure:"versions" yaml:"versions"`
		VerifyChecksum   bool     `mapstructure:"verify_checksum" yaml:"verify_checksum"`
	} `mapstructure:"maven" yaml:"maven"`

	Karaf struct {
		Version         string `mapstructure:"version" yaml:"version"`
		Name            string `mapstructure:"name" yaml:"name"`
		UnpackDir       string `mapstructure:"unpack_dir" yaml:"unpack_dir"`
		UseDeployFolder bool   `mapstructure:"use_deploy_folder" yaml:"use_deploy_folder"`
		User            string `mapstructure:"user" yaml:"user"`
		Password        string `mapstructure:"password" yaml:"password"`
		HTTPPort        int    `mapstructure:"http_port" yaml:"http_port"`

		Features struct {
			Verify bool     `mapstructure:"verify" yaml:"verify"`
			Boot   []string `mapstructure:"boot" yaml:"boot"`
		} `mapstructure:"features" yaml:"features"`

		Container struct {
			Image          string        `mapstructure:"image" yaml:"image"`
			StartupTimeout time.Duration `mapstructure:"startup_timeout" yaml:"startup_timeout"`
			Env            []string      `mapstructure:"env" yaml:"env"`
		} `mapstructure:"container" yaml:"container"`

		Bundle struct {
			StableTimeout        time.Duration `mapstructure:"stable_timeout" yaml:"stable_timeout"`
			StableInterval       time.Duration `mapstructure:"stable_interval" yaml:"stable_interval"`
			SymbolicNamesIgnored []string      `mapstructure:"symbolic_names_ignored" yaml:"symbolic_names_ignored"`
		} `mapstructure:"bundle" yaml:"bundle"`
	} `mapstructure:"karaf" yaml:"karaf"`

	Camel struct {
		Version  string   `mapstructure:"version" yaml:"version"`
		Bundle   string   `mapstructure:"bundle" yaml:"bundle"`
		Features []string `mapstructure:"features" yaml:"features"`
	} `mapstructure:"camel" yaml:"camel"`

	Drools struct {
		FeaturesClassifier string `mapstructure:"features_classifier" yaml:"features_classifier"`
	} `mapstructure:"drools" yaml:"drools"`
}
