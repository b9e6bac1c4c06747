package osgi

import (
	"fmt"
	"strings"

	"github.com/essentialkaos/go-jar"
)

func ReadBundleManifest(localPath string) (*BundleManifest, error) {
	manifest, err := jar.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read OSGi bundle manifest from file '%s': %w", localPath, err)
	}
	result := &BundleManifest{SymbolicName: SymbolicNameOnly(manifest[AttributeSymbolicName]), Version: manifest[AttributeVersion]}
	if result.SymbolicName == "" {
		return nil, fmt.Errorf("file '%s' is not an OSGi bundle as manifest has no '%s'", localPath, AttributeSymbolicName)
	}
	return result, nil
}

type BundleManifest struct {
	SymbolicName string
	Version      string
}

// SymbolicNameOnly strips directives like ';singleton:=true' from manifest header value.
func SymbolicNameOnly(header string) string {
	name, _, _ := strings.Cut(header, ";")
	return strings.TrimSpace(name)
}

const (
	AttributeSymbolicName = "Bundle-SymbolicName"
	AttributeVersion      = "Bundle-Version"
)
