package assembler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type AssemblerConfig struct {
	StrictLabels    bool   `json:"strictLabels"`    // duplicate labels are errors instead of warnings
	OutputExtension string `json:"outputExtension"` // extension of the generated machine code file
	MaxCycles       int    `json:"maxCycles"`       // default emulator budget, 0 is unlimited
}

const DefaultConfigFile = "hackasmConfig.json"

func DefaultConfig() AssemblerConfig {
	return AssemblerConfig{
		OutputExtension: ".hack",
		MaxCycles:       1000000,
	}
}

var assemblerConfig = DefaultConfig()

func GetConfig() AssemblerConfig {
	return assemblerConfig
}

func SetConfig(config AssemblerConfig) {
	assemblerConfig = config
}

// LoadConfig reads a JSON config file on top of the defaults. When the file is
// the default file and does not exist, the defaults are returned.
func LoadConfig(path string) (AssemblerConfig, error) {
	conf := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile {
			return conf, nil
		}
		return conf, err
	}

	if err := json.Unmarshal(b, &conf); err != nil {
		return conf, err
	}
	if conf.OutputExtension == "" {
		conf.OutputExtension = ".hack"
	}
	if conf.MaxCycles < 0 {
		return conf, fmt.Errorf("maxCycles must not be negative, got %d", conf.MaxCycles)
	}
	return conf, nil
}
