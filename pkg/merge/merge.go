// Package merge implements deep-merging of configuration maps.
// Later inputs override earlier ones.
package merge

import (
	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	errUtils "github.com/matrixci/matrixci/errors"
)

// Merge deep-merges the inputs in order (first is base, last wins).
func Merge(inputs []map[string]any) (map[string]any, error) {
	merged := map[string]any{}

	for index := range inputs {
		current := inputs[index]

		if len(current) == 0 {
			continue
		}

		// mergo modifies the source of the second merged map (reuses its
		// sub-maps in the result), so a deep copy via a YAML round-trip
		// keeps the callers' inputs intact.
		yamlCurrent, err := yaml.Marshal(current)
		if err != nil {
			return nil, errUtils.Wrap(err, "merge: marshal input")
		}

		var dataCurrent map[string]any
		if err = yaml.Unmarshal(yamlCurrent, &dataCurrent); err != nil {
			return nil, errUtils.Wrap(err, "merge: unmarshal input")
		}

		if err = mergo.Merge(&merged, dataCurrent, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return nil, errUtils.Wrap(err, "merge")
		}
	}

	return merged, nil
}
