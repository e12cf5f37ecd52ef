package types

import (
	"io"

	"github.com/pkg/errors"
)

// InputFile is a reference to file contents passed to a send* method.
// FileID, FileURL and FileAttach are sent as strings. FilePath, FileBytes
// and FileReader must be uploaded and are resolved before encoding.
type InputFile interface {
	inputFile()
}

// FileID references a file already stored on the Telegram servers.
type FileID string

// FileURL lets Telegram download the file from the Internet.
type FileURL string

// FileAttach references a multipart part by name (attach://<name>).
type FileAttach string

// FilePath is a local file which will be uploaded.
type FilePath string

// FileBytes is in-memory file contents which will be uploaded.
type FileBytes struct {
	Name string
	Data []byte
}

// FileReader streams file contents which will be uploaded.
// It can be sent only once.
type FileReader struct {
	Name   string
	Reader io.Reader
}

func (FileID) inputFile()      {}
func (FileURL) inputFile()     {}
func (FileAttach) inputFile()  {}
func (FilePath) inputFile()    {}
func (FileBytes) inputFile()   {}
func (*FileReader) inputFile() {}

func (f FileID) MarshalText() ([]byte, error)  { return []byte(f), nil }
func (f FileURL) MarshalText() ([]byte, error) { return []byte(f), nil }

func (f FileAttach) MarshalText() ([]byte, error) {
	return []byte("attach://" + string(f)), nil
}

var errUnresolved = errors.New("upload must be resolved before encoding")

func (f FilePath) MarshalText() ([]byte, error)  { return nil, errUnresolved }
func (f FileBytes) MarshalJSON() ([]byte, error) { return nil, errUnresolved }

func (f *FileReader) MarshalJSON() ([]byte, error) { return nil, errUnresolved }

// IsUpload checks if the file contents must be uploaded.
func IsUpload(file InputFile) bool {
	switch file.(type) {
	case FilePath, FileBytes, *FileReader:
		return true
	default:
		return false
	}
}
