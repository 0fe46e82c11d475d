package exec

import (
	"fmt"
	"os"
	"strings"

	"github.com/matrixci/matrixci/pkg/merge"
	"github.com/matrixci/matrixci/pkg/schema"
)

// EnvironMap returns the process environment as a map.
func EnvironMap() map[string]string {
	environ := os.Environ()
	result := make(map[string]string, len(environ))

	for _, entry := range environ {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		}
	}

	return result
}

// InterpreterEnviron returns the probe results and resolved platform as
// environment entries, included in `matrixci env` output and exported to
// every batch command.
func InterpreterEnviron(info schema.InterpreterInfo, platform string) map[string]string {
	return map[string]string{
		"MATRIXCI_PLATFORM":              platform,
		"MATRIXCI_PYTHON_EXECUTABLE":     info.Executable,
		"MATRIXCI_PYTHON_IMPLEMENTATION": info.Implementation,
		"MATRIXCI_PYTHON_VERSION":        info.Version,
	}
}

// batchEnviron flattens the manifest-level and batch-level env into `K=V`
// entries. Batch-level values override manifest-level ones key by key.
func batchEnviron(manifest *schema.MatrixManifest, batch *schema.BatchDefinition, extra map[string]string) ([]string, error) {
	merged, err := merge.Merge([]map[string]any{
		toAnyMap(manifest.Env),
		toAnyMap(batch.Env),
		toAnyMap(extra),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(merged))
	for key, value := range merged {
		entries = append(entries, fmt.Sprintf("%s=%v", key, value))
	}

	return entries, nil
}

func toAnyMap(in map[string]string) map[string]any {
	result := make(map[string]any, len(in))
	for key, value := range in {
		result[key] = value
	}
	return result
}
