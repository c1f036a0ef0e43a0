package lint

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes opts into target, a pointer to a struct whose fields
// carry `mapstructure` tags. Fields keep their current values when the key is
// absent, so callers pre-fill defaults. Values are converted weakly ("80" -> 80)
// and unknown keys are an error.
func DecodeOptions(opts map[string]any, target any) error {
	if len(opts) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("options decoder: %w", err)
	}
	return dec.Decode(opts)
}
