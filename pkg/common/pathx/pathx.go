package pathx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

func Current() string {
	path, err := os.Getwd()
	if err != nil {
		log.Fatalf("cannot determine current working directory: %s", err)
	}
	return path
}

func Abs(path string) string {
	result, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("cannot determine absolute path for '%s': %s", path, err)
	}
	return result
}

func Normalize(path string) string {
	return strings.ReplaceAll(filepath.Clean(path), "\\", "/")
}

func Exists(path string) bool {
	exists, _ := ExistsStrict(path)
	return exists
}

func ExistsStrict(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("cannot check path existence '%s': %w", path, err)
}

func IsDir(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return stat.IsDir()
}

func Delete(path string) error {
	err := os.RemoveAll(path)
	if err != nil {
		return fmt.Errorf("cannot delete path '%s': %w", path, err)
	}
	return nil
}

func DeleteIfExists(path string) error {
	if !Exists(path) {
		return nil
	}
	return Delete(path)
}

func Ensure(path string) error {
	err := os.MkdirAll(path, 0755)
	if err != nil {
		return fmt.Errorf("cannot ensure path '%s': %w", path, err)
	}
	return nil
}

func EnsureWithChanged(path string) (bool, error) {
	if Exists(path) {
		return false, nil
	}
	if err := Ensure(path); err != nil {
		return false, err
	}
	return true, nil
}

// SingleDir returns the only directory nested in a given one or the given dir itself when there is no exactly one child.
func SingleDir(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("cannot read dir '%s': %w", path, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(path, entries[0].Name()), nil
	}
	return path, nil
}

func Home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("cannot determine user home directory: %s", err)
	}
	return dir
}
