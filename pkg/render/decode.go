package render

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/neosetup/pkg/errors"
)

// decodeSection maps a merged section onto its typed view. Decoding is
// weakly typed, matching how the configuration loader treats user input:
// a YAML scalar that can become the target type does.
func decodeSection(section string, data map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to build section decoder")
	}

	if err := decoder.Decode(data); err != nil {
		return errors.Wrapf(err, errors.ErrSectionDecode,
			"failed to decode '%s' section", section)
	}
	return nil
}
