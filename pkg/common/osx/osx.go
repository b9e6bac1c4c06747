package osx

import (
	"os"
	"runtime"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func IsWindows() bool {
	return runtime.GOOS == "windows"
}

func EnvVarsMap() map[string]string {
	result := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			result[e[:i]] = e[i+1:]
		}
	}
	return result
}

// EnvVarsLoad reads '.env' files from working directory without overriding variables already set.
func EnvVarsLoad() {
	for _, file := range []string{".env", ".env.local"} {
		if !pathx.Exists(file) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Fatalf("cannot load env file '%s': %s", file, err)
		}
	}
}
