package iostore

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/benchboard/schema"
	"gopkg.in/yaml.v3"
)

// SeedData maps each variant to its raw submissions.
type SeedData map[schema.VariantName][]map[string]string

// Count returns the number of entries across all variants.
func (d SeedData) Count() int {
	total := 0
	for _, entries := range d {
		total += len(entries)
	}
	return total
}

// LoadSeedFile reads a YAML document keyed by variant name, each holding a list of
// submissions. Scalar values are kept as the raw strings a form would send.
func LoadSeedFile(path string) (SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML. Unknown variants and nested values are rejected.
func ParseSeed(data []byte) (SeedData, error) {
	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	out := make(SeedData, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		v, err := schema.LookupVariant(name)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		entries := make([]map[string]string, 0, len(raw[name]))
		for i, entry := range raw[name] {
			fields := make(map[string]string, len(entry))
			for key, value := range entry {
				s, err := seedString(value)
				if err != nil {
					return nil, fmt.Errorf("seed %s entry %d field %s: %w", v.Name, i+1, key, err)
				}
				fields[strings.ToLower(key)] = s
			}
			entries = append(entries, fields)
		}
		out[v.Name] = append(out[v.Name], entries...)
	}
	return out, nil
}

// seedString renders one YAML scalar as a form value.
func seedString(value any) (string, error) {
	switch val := value.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", value)
	}
}
