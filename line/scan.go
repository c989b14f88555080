package line

import (
	"bytes"
	"errors"
	"io"
	"os"
)

const scanChunk = 32 * 1024

// count returns the number of newline bytes in the file. If estimateAbove is positive and the
// file is larger than it, only the first estimateAbove bytes are scanned and the result is
// extrapolated.
func count(path string, estimateAbove int64) (size int, estimated bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false, &OpenError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	var (
		r     io.Reader = file
		total int64
	)
	if estimateAbove > 0 {
		info, err := file.Stat()
		if err != nil {
			return 0, false, &OpenError{Op: "stat", Path: path, Err: err}
		}
		if info.Size() > estimateAbove {
			total = info.Size()
			r = io.LimitReader(file, estimateAbove)
		}
	}

	var (
		buf = make([]byte, scanChunk)
		n   int
	)
	for {
		read, err := r.Read(buf)
		n += bytes.Count(buf[:read], []byte{'\n'})
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, false, &OpenError{Op: "scan", Path: path, Err: err}
		}
	}

	if total == 0 {
		return n, false, nil
	}

	return int(float64(n) * float64(total) / float64(estimateAbove)), true, nil
}
