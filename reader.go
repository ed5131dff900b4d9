package exif

// Resources:
// https://www.cipa.jp/std/documents/e/DC-008-2012_E.pdf (Exif 2.3)
// https://www.awaresystems.be/imaging/tiff/tifftags/privateifd/exif.html (Exif tags)
// https://www.fileformat.info/format/tiff/egff.htm
// http://www.awaresystems.be/imaging/tiff.html

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

//------------------------//
// Header                 //
//------------------------//

// Header is the fixed 20-byte prefix of a JPEG file carrying EXIF data.
type Header struct {
	SOI        uint16 // JPEG start of image marker.
	APP1       uint16
	APP1Length uint16
	Signature  [4]byte
	Terminator uint16
	ByteOrder  [2]byte
	Version    uint16
	IFDOffset  uint32 // Not used, IFD0 is expected right after the header.
}

// Base returns the absolute position of the TIFF header. All offsets found
// in IFD entries are relative to it.
func (h Header) Base() int64 {
	return tiffBase
}

// DecodeHeader reads and validates the header from r, which must be
// positioned at the start of the file. On success r is positioned right
// after the header, on the IFD0 entry count.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header

	p := make([]byte, headerLen)
	if err := readFull(r, p, ErrTruncatedHeader); err != nil {
		return h, err
	}

	// JPEG markers are big-endian, the TIFF part is little-endian.
	h.SOI = binary.BigEndian.Uint16(p[0:2])
	h.APP1 = binary.BigEndian.Uint16(p[2:4])
	h.APP1Length = binary.BigEndian.Uint16(p[4:6])
	copy(h.Signature[:], p[6:10])
	h.Terminator = binary.LittleEndian.Uint16(p[10:12])
	copy(h.ByteOrder[:], p[12:14])
	h.Version = binary.LittleEndian.Uint16(p[14:16])
	h.IFDOffset = binary.LittleEndian.Uint32(p[16:20])

	if string(h.Signature[:]) != signature {
		return h, errors.WithStack(ErrSignatureMismatch)
	}

	switch string(h.ByteOrder[:]) {
	case leOrder:
	case beOrder:
		return h, errors.WithStack(ErrUnsupportedByteOrder)
	default:
		return h, errors.Wrapf(ErrInvalidByteOrder, "%q", h.ByteOrder[:])
	}

	return h, nil
}

//------------------------//
// Reader                 //
//------------------------//

// Metadata holds the fields decoded from an EXIF block.
type Metadata struct {
	Header Header
	// Fields are in encounter order, IFD0 fields first, then the Exif
	// sub-IFD fields at the position of its pointer.
	Fields []Field
	// Warnings holds the tags that could not be decoded, or nil.
	// It is a *multierror.Error when set.
	Warnings error
}

// Get returns the first field with the given tag.
func (m *Metadata) Get(tag uint16) (Field, bool) {
	for _, f := range m.Fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// WriteTo writes one line per field to w.
func (m *Metadata) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, f := range m.Fields {
		n, err := fmt.Fprintln(w, f)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// String implements Stringer.
func (m *Metadata) String() string {
	buf := bytes.NewBufferString("")
	m.WriteTo(buf)
	return buf.String()
}

// Decode reads the EXIF block at the start of r with the default options.
func Decode(r io.ReadSeeker) (*Metadata, error) {
	return DecodeWithOptions(r, Options{})
}

// DecodeWithOptions reads the EXIF block at the start of r.
//
// Header failures are fatal and return a nil Metadata. Tags that cannot be
// decoded are skipped and reported in Metadata.Warnings. When IFD0 is
// truncated, the fields decoded so far are returned along with an error
// matching ErrTruncatedDirectory.
func DecodeWithOptions(r io.ReadSeeker, opts Options) (*Metadata, error) {
	d, err := newDecoder(r, opts)
	if err != nil {
		return nil, err
	}

	_, err = d.walk(IFD0)
	m := &Metadata{
		Header:   d.header,
		Fields:   d.fields,
		Warnings: d.warnings.ErrorOrNil(),
	}
	return m, err
}
