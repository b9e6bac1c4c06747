package fmtx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// None skips printing output of the commands
	None string = "none"

	// Text prints output of the commands as human-readable text
	Text string = "text"

	// YML prints output of the commands in YML format
	YML string = "yml"

	// JSON prints output of the commands in JSON format
	JSON string = "json"
)

func MarshalJSON(i any) (string, error) {
	bytes, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot convert object '%v' to JSON: %w", i, err)
	}
	return string(bytes), nil
}

func UnmarshalJSON(body io.Reader, out any) error {
	err := json.NewDecoder(body).Decode(out)
	if err != nil {
		return fmt.Errorf("cannot decode stream as JSON: %w", err)
	}
	return nil
}

func MarshalYML(i any) (string, error) {
	bytes, err := yaml.Marshal(i)
	if err != nil {
		return "", fmt.Errorf("cannot convert object '%v' to YML: %w", i, err)
	}
	return string(bytes), nil
}

func UnmarshalYML(body io.Reader, out any) error {
	err := yaml.NewDecoder(body).Decode(out)
	if err != nil {
		return fmt.Errorf("cannot decode stream as YML: %w", err)
	}
	return nil
}

func MarshalToFile(path string, data any) error {
	yml, err := MarshalYML(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot ensure dir for file '%s': %w", path, err)
	}
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		return fmt.Errorf("cannot write file '%s': %w", path, err)
	}
	return nil
}

func UnmarshalFile(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file '%s': %w", path, err)
	}
	defer file.Close()
	if err := UnmarshalYML(file, out); err != nil {
		return fmt.Errorf("cannot parse file '%s': %w", path, err)
	}
	return nil
}

type TextMarshaler interface {
	MarshalText() string
}

func MarshalText(value any) string {
	marshaller, ok := value.(TextMarshaler)
	if ok {
		return marshaller.MarshalText()
	}
	return fmt.Sprintf("%v", value)
}
