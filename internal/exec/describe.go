package exec

import (
	"github.com/matrixci/matrixci/pkg/gate"
	"github.com/matrixci/matrixci/pkg/schema"
)

// ExecuteDescribeBatches evaluates every batch's gates against the host and
// returns one row per batch, in manifest order.
func ExecuteDescribeBatches(
	manifest *schema.MatrixManifest,
	info schema.InterpreterInfo,
	platform string,
) ([]schema.DescribeBatchesItem, error) {
	items := make([]schema.DescribeBatchesItem, 0, len(manifest.Batches))

	for index := range manifest.Batches {
		batch := manifest.Batches[index]

		result, err := gate.Evaluate(&batch, info, platform)
		if err != nil {
			return nil, err
		}

		items = append(items, schema.DescribeBatchesItem{
			Batch:    batch.Name,
			Selected: result.Selected,
			Reason:   result.Reason,
		})
	}

	return items, nil
}
