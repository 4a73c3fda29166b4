package hjson

import (
	"fmt"
	"os"
)

// FileError wraps a filesystem failure encountered while reading or
// writing a document, keeping it distinct from syntax and type errors.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("hjson: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// UnmarshalFromFile reads and parses the file at path.
func UnmarshalFromFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, &FileError{Op: "read", Path: path, Err: err}
	}
	return Unmarshal(data)
}

// MarshalToFile writes v as Hjson text to the file at path, creating or
// truncating it.
func MarshalToFile(v Value, path string) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
