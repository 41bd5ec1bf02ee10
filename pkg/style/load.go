package style

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// LoadFile reads a style file on top of [Default] and validates the result.
// The format is chosen by extension: .toml, .yaml or .yml.
func LoadFile(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style file %s", path)
		}
		return Style{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read style file %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes style data in the format named by ext (".toml", ".yaml",
// ".yml") on top of [Default] and validates the result.
func Parse(data []byte, ext string) (Style, error) {
	s := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return Style{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml style")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Style{}, errors.New(errors.ErrCodeInvalidConfig, "unknown style key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Style{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml style")
		}
	default:
		return Style{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported style file extension %q (want .toml, .yaml or .yml)", ext)
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}
