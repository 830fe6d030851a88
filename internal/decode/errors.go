package decode

import (
	"errors"
	"fmt"
)

// ErrNoFileSelected indicates a blank file name.
var ErrNoFileSelected = errors.New("no file selected")

// ErrUnsupportedFileType indicates an extension outside the allow-list.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrNoDecoder indicates an allow-listed extension that no decoder handles.
var ErrNoDecoder = errors.New("no decoder for file type")

// ErrTooLarge indicates the input exceeded the configured size limit.
var ErrTooLarge = errors.New("file too large")

// DecodeError wraps any failure while reading or parsing a file.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(name string, err error) *DecodeError {
	return &DecodeError{Name: name, Err: err}
}

// Message turns a load error into the text shown to the user.
func Message(err error) string {
	var de *DecodeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected."
	case errors.Is(err, ErrUnsupportedFileType):
		return "Unsupported file type. Please upload an Excel or CSV file."
	case errors.As(err, &de):
		return "Error reading file: " + de.Err.Error()
	default:
		return "Error reading file: " + err.Error()
	}
}
