package section

import (
	"fmt"

	"github.com/scgpm/interop/errs"
)

// Header is the fixed two-byte header at the start of every metrics file.
type Header struct {
	// Version selects the record schema together with the file kind.
	Version uint8 // byte offset 0
	// RecordLength is the number of bytes every record occupies in the stream.
	RecordLength uint8 // byte offset 1
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 2 bytes)
//
// Returns:
//   - error: ErrTruncatedInput if data is not 2 bytes
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrTruncatedInput
	}

	h.Version = data[VersionOffset]
	h.RecordLength = data[RecordLengthOffset]

	return nil
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	return []byte{h.Version, h.RecordLength}
}

func (h Header) String() string {
	return fmt.Sprintf("version=%d record_length=%d", h.Version, h.RecordLength)
}

// ParseHeader parses a Header from the start of a byte slice.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrTruncatedInput
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
