package filereader

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// reportFile couples the decoding reader with the file it reads from.
type reportFile struct {
	io.Reader
	file *os.File
}

func (r *reportFile) Close() error {
	return r.file.Close()
}

// OpenReport opens a report file for reading. A UTF-8 or UTF-16 byte order mark is
// consumed and the content is delivered as UTF-8; files without a BOM are passed
// through unchanged so an encoding declared inside the document still applies.
func OpenReport(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	return &reportFile{
		Reader: bufio.NewReader(transform.NewReader(file, decoder)),
		file:   file,
	}, nil
}
