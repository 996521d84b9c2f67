package output

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rubiojr/fuelrank/pkg/api"
)

// JSONWriter writes the result record as JSON.
type JSONWriter struct{}

func (w *JSONWriter) Write(ctx context.Context, path string, result api.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling result: %w", err)
	}
	return writeFile(path, data)
}
