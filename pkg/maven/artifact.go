// Package maven provides Maven artifact coordinates in the Pax URL 'mvn:' notation used by Karaf.
package maven

import (
	"fmt"
	"strings"
)

const (
	URLPrefix   = "mvn:"
	TypeDefault = "jar"
)

// Artifact identifies a Maven artifact. Zero-valued version means 'to be resolved' (e.g. as in project).
type Artifact struct {
	GroupID    string `yaml:"group_id" json:"groupId"`
	ArtifactID string `yaml:"artifact_id" json:"artifactId"`
	Version    string `yaml:"version,omitempty" json:"version,omitempty"`
	Type       string `yaml:"type,omitempty" json:"type,omitempty"`
	Classifier string `yaml:"classifier,omitempty" json:"classifier,omitempty"`
}

func NewArtifact(groupID, artifactID string) Artifact {
	return Artifact{GroupID: groupID, ArtifactID: artifactID}
}

func (a Artifact) WithVersion(version string) Artifact {
	a.Version = version
	return a
}

func (a Artifact) WithType(kind string) Artifact {
	a.Type = kind
	return a
}

func (a Artifact) WithClassifier(classifier string) Artifact {
	a.Classifier = classifier
	return a
}

// Key is the version-less identity used by project dependency listings.
func (a Artifact) Key() string {
	return a.GroupID + "/" + a.ArtifactID
}

func (a Artifact) Extension() string {
	if a.Type == "" {
		return TypeDefault
	}
	return a.Type
}

// URL renders Pax URL 'mvn:groupId/artifactId/version/type/classifier' dropping trailing empty segments.
func (a Artifact) URL() string {
	segments := []string{a.GroupID, a.ArtifactID, a.Version, a.Type, a.Classifier}
	last := 1
	for i := len(segments) - 1; i > 1; i-- {
		if segments[i] != "" {
			last = i
			break
		}
	}
	return URLPrefix + strings.Join(segments[:last+1], "/")
}

// FileName is the artifact file name as laid out in a Maven repository.
func (a Artifact) FileName() string {
	name := a.ArtifactID + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return name + "." + a.Extension()
}

// Path is the artifact location relative to Maven repository root.
func (a Artifact) Path() string {
	return fmt.Sprintf("%s/%s/%s/%s", strings.ReplaceAll(a.GroupID, ".", "/"), a.ArtifactID, a.Version, a.FileName())
}

func (a Artifact) Validate() error {
	if a.GroupID == "" || a.ArtifactID == "" {
		return fmt.Errorf("artifact '%s' must have both group and artifact ID", a.URL())
	}
	if a.Version == "" {
		return fmt.Errorf("artifact '%s' has no version", a.URL())
	}
	return nil
}

func (a Artifact) String() string {
	return a.URL()
}

func ParseURL(url string) (Artifact, error) {
	if !strings.HasPrefix(url, URLPrefix) {
		return Artifact{}, fmt.Errorf("cannot parse Maven URL '%s' as it does not start with '%s'", url, URLPrefix)
	}
	value := strings.TrimPrefix(url, URLPrefix)
	// repository part 'mvn:http://repo@id=x!g/a/v' is not supported here
	if strings.Contains(value, "!") {
		return Artifact{}, fmt.Errorf("cannot parse Maven URL '%s' as repository-qualified URLs are not supported", url)
	}
	parts := strings.Split(value, "/")
	if len(parts) < 2 || len(parts) > 5 {
		return Artifact{}, fmt.Errorf("cannot parse Maven URL '%s' as it should have from 2 to 5 segments", url)
	}
	segments := make([]string, 5)
	copy(segments, parts)
	result := Artifact{
		GroupID:    segments[0],
		ArtifactID: segments[1],
		Version:    segments[2],
		Type:       segments[3],
		Classifier: segments[4],
	}
	if result.GroupID == "" || result.ArtifactID == "" {
		return Artifact{}, fmt.Errorf("cannot parse Maven URL '%s' as group or artifact ID is empty", url)
	}
	return result, nil
}
