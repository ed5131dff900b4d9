package exif

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Options tune the decoder. The zero value is ready to use.
type Options struct {
	// ScanAll keeps walking IFD0 once the Exif sub-IFD has been processed.
	// By default the walk stops right after it.
	ScanAll bool
	// MaxPayload is the largest out-of-line payload, in bytes, the decoder
	// allocates for a single tag. Zero means DefaultMaxPayload.
	MaxPayload uint32
}

type decoder struct {
	r        io.ReadSeeker
	opts     Options
	base     int64
	header   Header
	fields   []Field
	warnings *multierror.Error
}

func newDecoder(r io.ReadSeeker, opts Options) (*decoder, error) {
	if opts.MaxPayload == 0 {
		opts.MaxPayload = DefaultMaxPayload
	}

	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}

	return &decoder{
		r:      r,
		opts:   opts,
		base:   h.Base(),
		header: h,
	}, nil
}

// emit appends a decoded field in encounter order.
func (d *decoder) emit(f Field) {
	d.fields = append(d.fields, f)
}

// warn records a recoverable failure.
func (d *decoder) warn(err error) {
	d.warnings = multierror.Append(d.warnings, err)
}

//------------------------//
// Cursor                 //
//------------------------//

// mark saves the stream position. The returned function seeks back to it.
func (d *decoder) mark() (restore func() error, err error) {
	pos, err := d.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "could not get stream position")
	}
	return func() error {
		if _, err := d.r.Seek(pos, io.SeekStart); err != nil {
			return errors.Wrapf(err, "could not restore stream position %d", pos)
		}
		return nil
	}, nil
}

// seekTo moves the cursor to off, relative to the TIFF base.
func (d *decoder) seekTo(off uint32) error {
	if _, err := d.r.Seek(d.base+int64(off), io.SeekStart); err != nil {
		return errors.Wrapf(err, "could not seek to offset %d", off)
	}
	return nil
}

// readAt reads len(p) bytes at off, relative to the TIFF base.
// The stream position is left unchanged.
func (d *decoder) readAt(p []byte, off uint32) (err error) {
	restore, err := d.mark()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if err = d.seekTo(off); err != nil {
		return err
	}
	return readFull(d.r, p, ErrTruncatedPayload)
}

// readFull reads exactly len(p) bytes from r. A short read is reported as kind.
func readFull(r io.Reader, p []byte, kind FormatError) error {
	n, err := io.ReadFull(r, p)
	switch err {
	case nil:
		return nil
	case io.EOF, io.ErrUnexpectedEOF:
		return errors.Wrapf(kind, "got %d of %d bytes", n, len(p))
	default:
		return errors.Wrap(err, "could not read")
	}
}
