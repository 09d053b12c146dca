package httpx

import (
	"errors"
	"strconv"
	"strings"
)

// Byte-range parsing errors. The caller decides how these map onto HTTP
// status codes; all three conventionally produce 416 with
// "Content-Range: bytes */<size>".
var (
	ErrMalformedRange     = errors.New("httpx: malformed range header")
	ErrUnsatisfiableRange = errors.New("httpx: unsatisfiable range")
	ErrMultiRange         = errors.New("httpx: multi-range requests unsupported")
)

// ByteRange is a validated single byte range over a resource of known size.
// Invariant: 0 <= Start <= End < size and Length == End-Start+1.
type ByteRange struct {
	Start  int64
	End    int64
	Length int64
}

// ParseRange parses a Range request header against the resource size.
// It supports the three canonical single-range forms: "start-end",
// "start-" and "-suffixLength". Comma-separated multi-range requests are
// rejected with ErrMultiRange rather than partially satisfied.
func ParseRange(header string, size int64) (ByteRange, error) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(strings.ToLower(header), "bytes=") {
		return ByteRange{}, ErrMalformedRange
	}
	spec := strings.TrimSpace(header[len("bytes="):])

	if strings.Contains(spec, ",") {
		return ByteRange{}, ErrMultiRange
	}
	if size <= 0 {
		return ByteRange{}, ErrUnsatisfiableRange
	}

	dash := strings.Index(spec, "-")
	if dash < 0 {
		return ByteRange{}, ErrMalformedRange
	}
	first, last := strings.TrimSpace(spec[:dash]), strings.TrimSpace(spec[dash+1:])

	if first == "" {
		// "-N": the final N bytes of the resource.
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil || n <= 0 {
			return ByteRange{}, ErrMalformedRange
		}
		if n > size {
			n = size
		}
		return newRange(size-n, size-1), nil
	}

	start, err := strconv.ParseInt(first, 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, ErrMalformedRange
	}
	if start >= size {
		return ByteRange{}, ErrUnsatisfiableRange
	}

	end := size - 1
	if last != "" {
		end, err = strconv.ParseInt(last, 10, 64)
		if err != nil {
			return ByteRange{}, ErrMalformedRange
		}
		if end < start {
			return ByteRange{}, ErrMalformedRange
		}
		if end >= size {
			end = size - 1
		}
	}

	return newRange(start, end), nil
}

func newRange(start, end int64) ByteRange {
	return ByteRange{Start: start, End: end, Length: end - start + 1}
}
