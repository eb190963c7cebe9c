package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
)

// JSON implementa ports.Reporter volcando los resultados como JSON indentado.
// Los acumuladores fee growth se serializan como string (decimal exacto).
type JSON struct {
	out io.Writer
}

// NewJSON crea un reporter JSON que escribe a stdout.
func NewJSON() *JSON {
	return &JSON{out: os.Stdout}
}

// NewJSONWriter crea un reporter JSON para tests.
func NewJSONWriter(w io.Writer) *JSON {
	return &JSON{out: w}
}

// Report escribe un objeto si hay un resultado, o un array si hay varios.
func (j *JSON) Report(_ context.Context, results []domain.Result) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")

	var v any = results
	if len(results) == 1 {
		v = results[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("notify.JSON: encode: %w", err)
	}
	return nil
}
