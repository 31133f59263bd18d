// Package configuration provides the YAML-based global configuration used by
// the rsdiff command line interface.
package configuration

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/rsdiff-io/rsdiff/pkg/encoding"
	"github.com/rsdiff-io/rsdiff/pkg/logging"
)

// GlobalConfigurationName is the name of the global configuration file inside
// the user's home directory.
const GlobalConfigurationName = ".rsdiff.yaml"

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// Diff contains differencing defaults.
	Diff struct {
		// BlockSize is the default block size used when no explicit block
		// size is requested. A zero value selects automatic sizing.
		BlockSize uint64 `yaml:"blockSize"`
	} `yaml:"diff"`
	// Log contains logging defaults.
	Log struct {
		// Level is the default log level name.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// EnsureValid verifies that configuration invariants are respected.
func (c *Configuration) EnsureValid() error {
	// A nil configuration is not valid.
	if c == nil {
		return errors.New("nil configuration")
	}

	// Verify the log level name, if specified.
	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}

	// Success.
	return nil
}

// GlobalConfigurationPath returns the path of the YAML-based global
// configuration file. It does not verify that the file exists.
func GlobalConfigurationPath() (string, error) {
	homeDirectoryPath, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to home directory")
	}
	return filepath.Join(homeDirectoryPath, GlobalConfigurationName), nil
}

// Load attempts to load a YAML-based configuration file from the specified
// path. A missing file is not an error and yields a default configuration.
func Load(path string) (*Configuration, error) {
	// Create the target configuration object.
	result := &Configuration{}

	// Attempt to load, treating absence as defaults.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}

	// Validate.
	if err := result.EnsureValid(); err != nil {
		return nil, err
	}

	// Success.
	return result, nil
}
