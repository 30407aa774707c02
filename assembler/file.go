package assembler

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputPath replaces the extension of the source path with the configured
// machine code extension.
func OutputPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + assemblerConfig.OutputExtension
}

// AssembleFile assembles sourcePath and writes the machine code next to it.
// The output file is only created once the whole program assembled.
func AssembleFile(sourcePath string) (*AssembledResult, string, error) {
	b, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, "", &IOError{Op: "read", Path: sourcePath, Err: err}
	}

	res := Assemble(string(b))
	res.FileName = filepath.Base(sourcePath)
	text, err := res.Hack()
	if err != nil {
		return res, "", err
	}

	outPath := OutputPath(sourcePath)
	if err := writeFileAtomic(outPath, []byte(text)); err != nil {
		return res, "", &IOError{Op: "write", Path: outPath, Err: err}
	}
	return res, outPath, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hackasm-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
