package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codingsince1985/checksum"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/otiai10/copy"
)

func Write(path string, text string) error {
	err := pathx.Ensure(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("cannot ensure path '%s': %w", path, err)
	}
	err = os.WriteFile(path, []byte(text), 0644)
	if err != nil {
		return fmt.Errorf("cannot write to file '%s': %w", path, err)
	}
	return nil
}

func Read(path string) ([]byte, error) {
	if !pathx.Exists(path) {
		return nil, fmt.Errorf("cannot read file as it does not exist at path '%s'", path)
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file '%s': %w", path, err)
	}
	return bytes, nil
}

func ReadString(path string) (string, error) {
	bytes, err := Read(path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CopyDir copies a whole directory tree, preserving file modes (e.g. executable 'bin/karaf').
func CopyDir(sourceDir, targetDir string) error {
	if !pathx.IsDir(sourceDir) {
		return fmt.Errorf("cannot copy dir '%s' to '%s' as source is not a directory", sourceDir, targetDir)
	}
	if err := copy.Copy(sourceDir, targetDir); err != nil {
		return fmt.Errorf("cannot copy dir '%s' to '%s': %w", sourceDir, targetDir, err)
	}
	return nil
}

func ChecksumSHA1(path string) (string, error) {
	sum, err := checksum.SHA1sum(path)
	if err != nil {
		return "", fmt.Errorf("cannot calculate SHA-1 checksum of file '%s': %w", path, err)
	}
	return sum, nil
}

// VerifySHA1 compares file checksum with a Maven-style '.sha1' content (hash optionally followed by file name).
func VerifySHA1(path string, expected string) error {
	fields := strings.Fields(expected)
	if len(fields) == 0 {
		return fmt.Errorf("cannot verify SHA-1 checksum of file '%s' as expected value is empty", path)
	}
	actual, err := ChecksumSHA1(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, fields[0]) {
		return fmt.Errorf("checksum mismatch of file '%s': expected SHA-1 '%s' but got '%s'", path, fields[0], actual)
	}
	return nil
}
