package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/logger"
	"github.com/matrixci/matrixci/pkg/schema"
)

//go:embed default_manifest.yaml
var defaultManifestYAML []byte

// LoadManifest reads a batch manifest. The path on the command line wins over
// the configured `manifest_path`; with neither, the embedded default manifest
// (the optional-dependency matrix) is used.
func LoadManifest(cliConfig *schema.Configuration, path string) (schema.MatrixManifest, error) {
	var manifest schema.MatrixManifest

	if path == "" {
		path = cliConfig.ManifestPath
	}

	content := defaultManifestYAML
	source := "embedded default"

	if path != "" {
		fileContent, err := os.ReadFile(path)
		if err != nil {
			return manifest, errUtils.Wrapf(errUtils.ErrInvalidManifest, "reading '%s': %v", path, err)
		}
		content = fileContent
		source = path
	}

	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return manifest, errUtils.Wrapf(errUtils.ErrInvalidManifest, "parsing '%s': %v", source, err)
	}

	if len(manifest.Batches) == 0 {
		return manifest, errUtils.Wrapf(errUtils.ErrNoBatches, "manifest '%s'", source)
	}

	for index := range manifest.Batches {
		if manifest.Batches[index].Name == "" {
			return manifest, errUtils.Wrapf(errUtils.ErrInvalidManifest,
				"manifest '%s': batch %d does not have a 'name' attribute", source, index+1)
		}
	}

	logger.Debug("Loaded manifest", "source", source, "batches", len(manifest.Batches))

	return manifest, nil
}
