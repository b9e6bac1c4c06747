package karaf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/samber/lo"
)

const featureVersionDefault = "0.0.0"

// FeaturesDescriptor is a features repository XML, i.e. named set of features to be provisioned together.
type FeaturesDescriptor struct {
	Name         string    `yaml:"name" json:"name"`
	Repositories []string  `yaml:"repositories" json:"repositories"`
	Features     []Feature `yaml:"features" json:"features"`
}

type Feature struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

func (f Feature) String() string {
	return f.Name + "/" + f.Version
}

func ReadFeaturesDescriptor(file string) (*FeaturesDescriptor, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open features descriptor '%s': %w", file, err)
	}
	defer reader.Close()
	result, err := ParseFeaturesDescriptor(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read features descriptor '%s': %w", file, err)
	}
	return result, nil
}

// ParseFeaturesDescriptor reads features XML regardless of its schema version (namespace).
func ParseFeaturesDescriptor(reader io.Reader) (*FeaturesDescriptor, error) {
	doc, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot parse features XML: %w", err)
	}
	root := xmlquery.FindOne(doc, "/*[local-name()='features']")
	if root == nil {
		return nil, fmt.Errorf("cannot find root element 'features' in XML")
	}
	result := &FeaturesDescriptor{Name: root.SelectAttr("name")}
	for _, node := range xmlquery.Find(root, "./*[local-name()='repository']") {
		repo := strings.TrimSpace(node.InnerText())
		if repo != "" {
			result.Repositories = append(result.Repositories, repo)
		}
	}
	for _, node := range xmlquery.Find(root, "./*[local-name()='feature']") {
		version := node.SelectAttr("version")
		if version == "" {
			version = featureVersionDefault
		}
		result.Features = append(result.Features, Feature{Name: node.SelectAttr("name"), Version: version})
	}
	return result, nil
}

func (d *FeaturesDescriptor) Has(name string) bool {
	return lo.ContainsBy(d.Features, func(f Feature) bool { return f.Name == name })
}

func (d *FeaturesDescriptor) Names() []string {
	return lo.Uniq(lo.Map(d.Features, func(f Feature, _ int) string { return f.Name }))
}

// Missing returns requested feature names not defined in the descriptor.
func (d *FeaturesDescriptor) Missing(names []string) []string {
	return lo.Filter(names, func(n string, _ int) bool { return !d.Has(n) })
}

func (d FeaturesDescriptor) MarshalText() string {
	sb := strings.Builder{}
	sb.WriteString(fmtx.TblList("descriptor", [][]any{
		{"name", d.Name},
		{"repositories", strings.Join(d.Repositories, ", ")},
	}))
	sb.WriteString(fmtx.TblRows("features", []string{"name", "version"}, lo.Map(d.Features, func(f Feature, _ int) map[string]any {
		return map[string]any{"name": f.Name, "version": f.Version}
	})))
	return sb.String()
}
