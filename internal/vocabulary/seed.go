package vocabulary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of the server-wide vocabulary:
//
//	lemmas:
//	  zonked: fatigue
//	  brain static: brain_fog
type seedFile struct {
	Lemmas map[string]string `yaml:"lemmas"`
}

// LoadSeedFile reads a YAML seed vocabulary from path
func LoadSeedFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed vocabulary: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes seed YAML. Words are lowercased and trimmed; an entry
// with an empty word or category is an error.
func ParseSeed(data []byte) (map[string]string, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed vocabulary: %w", err)
	}

	seed := make(map[string]string, len(file.Lemmas))
	for word, category := range file.Lemmas {
		w := strings.Join(strings.Fields(strings.ToLower(word)), " ")
		c := strings.TrimSpace(category)
		if w == "" || c == "" {
			return nil, fmt.Errorf("invalid seed entry %q: %q", word, category)
		}
		seed[w] = c
	}
	return seed, nil
}
