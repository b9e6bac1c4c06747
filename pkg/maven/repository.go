package maven

import (
	"fmt"
	"strings"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/stringsx"
	"github.com/samber/lo"
)

const (
	repositoryOptSeparator = "@"
	repositoryOptID        = "id="
	repositoryOptSnapshots = "snapshots"
	repositoryOptNoRelease = "noreleases"
	repositoryListSep      = ","
)

// Repository is a remote Maven repository in pax-url-aether notation 'url@id=name[@snapshots][@noreleases]'.
// Other options like 'update=always' or 'multi' are kept as they are in Options.
type Repository struct {
	URL       string   `yaml:"url" json:"url"`
	ID        string   `yaml:"id" json:"id"`
	Snapshots bool     `yaml:"snapshots" json:"snapshots"`
	Releases  bool     `yaml:"releases" json:"releases"`
	Options   []string `yaml:"options,omitempty" json:"options,omitempty"`
}

func (r Repository) String() string {
	sb := strings.Builder{}
	sb.WriteString(r.URL)
	if r.ID != "" {
		sb.WriteString(repositoryOptSeparator + repositoryOptID + r.ID)
	}
	if r.Snapshots {
		sb.WriteString(repositoryOptSeparator + repositoryOptSnapshots)
	}
	if !r.Releases {
		sb.WriteString(repositoryOptSeparator + repositoryOptNoRelease)
	}
	for _, opt := range r.Options {
		sb.WriteString(repositoryOptSeparator + opt)
	}
	return sb.String()
}

// ArtifactURL is the remote location of an artifact file.
func (r Repository) ArtifactURL(artifact Artifact) string {
	return strings.TrimSuffix(r.URL, "/") + "/" + artifact.Path()
}

func ParseRepository(value string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(value), repositoryOptSeparator)
	if parts[0] == "" {
		return Repository{}, fmt.Errorf("cannot parse Maven repository '%s' as URL is empty", value)
	}
	result := Repository{URL: parts[0], Releases: true}
	for _, opt := range parts[1:] {
		switch {
		case strings.HasPrefix(opt, repositoryOptID):
			result.ID = strings.TrimPrefix(opt, repositoryOptID)
		case opt == repositoryOptSnapshots:
			result.Snapshots = true
		case opt == repositoryOptNoRelease:
			result.Releases = false
		case opt == "":
			return Repository{}, fmt.Errorf("cannot parse Maven repository '%s' as it contains empty option", value)
		default:
			result.Options = append(result.Options, opt)
		}
	}
	return result, nil
}

// ParseRepositories reads comma-separated repository list, tolerating whitespace and line breaks.
func ParseRepositories(value string) ([]Repository, error) {
	var result []Repository
	for _, item := range stringsx.SplitTrim(value, repositoryListSep) {
		repo, err := ParseRepository(item)
		if err != nil {
			return nil, err
		}
		result = append(result, repo)
	}
	return result, nil
}

func RepositoriesString(repos []Repository) string {
	return strings.Join(lo.Map(repos, func(r Repository, _ int) string { return r.String() }), repositoryListSep+" ")
}
