package filex

import (
	"fmt"
	"os"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/mholt/archiver/v3"
)

func unarchiver(sourceFile string) (archiver.Unarchiver, error) {
	format, err := archiver.ByExtension(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("cannot detect archive format of file '%s': %w", sourceFile, err)
	}
	result, ok := format.(archiver.Unarchiver)
	if !ok {
		return nil, fmt.Errorf("cannot unpack file '%s' as format '%T' is not an archive", sourceFile, format)
	}
	return result, nil
}

// Unpack extracts archive into target dir, replacing its previous content.
// Target dir is swapped in only once extraction succeeded.
func Unpack(sourceFile string, targetDir string) error {
	if !pathx.Exists(sourceFile) {
		return fmt.Errorf("cannot unpack file '%s' to dir '%s' as source file does not exist", sourceFile, targetDir)
	}
	format, err := unarchiver(sourceFile)
	if err != nil {
		return err
	}
	tmpDir := targetDir + ".tmp"
	if err := pathx.DeleteIfExists(tmpDir); err != nil {
		return fmt.Errorf("cannot clean temporary unpack dir '%s': %w", tmpDir, err)
	}
	if err := pathx.Ensure(tmpDir); err != nil {
		return err
	}
	if err := format.Unarchive(sourceFile, tmpDir); err != nil {
		_ = pathx.DeleteIfExists(tmpDir)
		return fmt.Errorf("cannot unpack file '%s' to dir '%s': %w", sourceFile, targetDir, err)
	}
	if err := pathx.DeleteIfExists(targetDir); err != nil {
		return fmt.Errorf("cannot delete previously unpacked dir '%s': %w", targetDir, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		return fmt.Errorf("cannot move temporary unpack dir '%s' to '%s': %w", tmpDir, targetDir, err)
	}
	return nil
}
