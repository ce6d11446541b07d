package pdftext

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// maxDecoded caps the size of a single decoded stream.
const maxDecoded = 64 << 20

// ErrFilter is returned for stream filters the reader cannot decode.
var ErrFilter = errors.New("pdftext: unsupported stream filter")

// decode applies the stream's filter chain.
func decode(v *Value) ([]byte, error) {
	data := v.Bytes
	for _, f := range v.Dict.Names("Filter") {
		var err error
		switch f {
		case "FlateDecode", "Fl":
			data, err = inflate(data)
		case "ASCIIHexDecode", "AHx":
			data, _ = decodeHex(data)
		case "RunLengthDecode", "RL":
			data = runLength(data)
		default:
			return nil, fmt.Errorf("%w: %s", ErrFilter, f)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdftext: inflate: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, maxDecoded+1))
	if len(out) > maxDecoded {
		return nil, errors.New("pdftext: inflate: stream too large")
	}
	// Truncated streams still yield whatever decoded cleanly.
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("pdftext: inflate: %w", err)
	}
	return out, nil
}

func runLength(data []byte) []byte {
	var out []byte
	for i := 0; i < len(data); {
		n := int(data[i])
		i++
		switch {
		case n == 128:
			return out
		case n < 128:
			end := min(i+n+1, len(data))
			out = append(out, data[i:end]...)
			i = end
		default:
			if i < len(data) {
				out = append(out, bytes.Repeat(data[i:i+1], 257-n)...)
			}
			i++
		}
	}
	return out
}
