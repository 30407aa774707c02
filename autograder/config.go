package autograder

import (
	"encoding/json"
	"os"
)

type TestCase struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Source     string `json:"source"`   // assembly file to translate
	Expected   string `json:"expected"` // reference machine code
	Visibility string `json:"visibility"`
	Points     int    `json:"points"`
}

type Config struct {
	AssignmentName string     `json:"assignmentName"`
	TestCases      []TestCase `json:"testCases"`
	ResultsPath    string     `json:"resultsPath"`
}

const DefaultConfigPath = "source/autograderConfig.json"

func LoadConfig(path string) (*Config, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}

	conf := new(Config)
	if e := json.Unmarshal(b, conf); e != nil {
		return nil, e
	}
	if conf.ResultsPath == "" {
		conf.ResultsPath = "results/results.json"
	}
	return conf, nil
}
