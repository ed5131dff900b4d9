package exif

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

//------------------------//
// Directory walker       //
//------------------------//

// walk reads the directory at the current position and resolves each entry
// against the registry of level. It reports whether an Exif sub-IFD was found.
//
// Unless ScanAll is set, the walk stops right after the sub-IFD.
// A short read aborts the directory with ErrTruncatedDirectory.
func (d *decoder) walk(level Level) (found bool, err error) {
	p := make([]byte, ifdLen)

	// The first two bytes contain the number of entries (12 bytes each).
	if err = readFull(d.r, p[:countLen], ErrTruncatedDirectory); err != nil {
		return false, errors.Wrapf(err, "%s entry count", level)
	}
	numItems := int(binary.LittleEndian.Uint16(p[:countLen]))

	for i := 0; i < numItems; i++ {
		if err = readFull(d.r, p, ErrTruncatedDirectory); err != nil {
			return found, errors.Wrapf(err, "%s entry %d/%d", level, i+1, numItems)
		}
		e := parseEntry(p)

		sub, rerr := d.resolve(level, e)
		if rerr != nil {
			d.warn(errors.Wrapf(rerr, "%s tag 0x%04x (%s)", level, e.id, TagName(level, e.id)))
		}
		if sub {
			found = true
			if !d.opts.ScanAll {
				break
			}
		}
	}
	return found, nil
}

//------------------------//
// Tag resolvers          //
//------------------------//

// resolve decodes e when it is known at level and emits the resulting field.
// It reports whether e pointed to a sub-IFD that has been walked.
// Every resolver leaves the stream position untouched.
func (d *decoder) resolve(level Level, e entry) (sub bool, err error) {
	def, ok := registry[level][e.id]
	if !ok {
		return false, nil
	}

	var v value
	switch def.rule {
	case ruleSubIFD:
		if level != IFD0 {
			return false, nil
		}
		return true, d.subIFD(e)
	case ruleScalar:
		v.u, err = d.scalar(e)
	case ruleString:
		v.s, err = d.ascii(e)
	case ruleRational:
		v.num, v.den, err = d.rational(e)
	}
	if err != nil {
		return false, err
	}
	if def.divides && v.den == 0 {
		return false, errors.Wrapf(ErrZeroDenominator, "%d/%d", v.num, v.den)
	}

	d.emit(Field{
		Level: level,
		Tag:   e.id,
		Name:  def.name,
		Value: def.render(v),
	})
	return false, nil
}

// subIFD walks the Exif sub-IFD pointed to by e.
func (d *decoder) subIFD(e entry) (err error) {
	restore, err := d.mark()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if err = d.seekTo(e.offset()); err != nil {
		return err
	}
	_, err = d.walk(ExifIFD)
	return err
}

// scalar decodes the first element of a Byte, Short or Long entry.
// Entries of any other type are read as the whole 4-byte value field.
func (d *decoder) scalar(e entry) (uint32, error) {
	switch e.datatype {
	case dtByte, dtShort, dtLong:
	default:
		return e.offset(), nil
	}

	w := e.width(4)
	var p []byte
	if e.inline(w) {
		p = e.value[:w]
	} else {
		// The payload lives out-of-line, only its first element is needed.
		p = make([]byte, w)
		if err := d.readAt(p, e.offset()); err != nil {
			return 0, err
		}
	}

	switch w {
	case 1:
		return uint32(p[0]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(p)), nil
	default:
		return binary.LittleEndian.Uint32(p), nil
	}
}

// ascii decodes count bytes as a string, truncated at the first NUL.
func (d *decoder) ascii(e entry) (string, error) {
	if e.inline(1) {
		return cstring(e.value[:e.count]), nil
	}
	if e.count > d.opts.MaxPayload {
		return "", errors.Wrapf(ErrPayloadTooLarge, "%d bytes", e.count)
	}

	p := make([]byte, e.count)
	if err := d.readAt(p, e.offset()); err != nil {
		return "", err
	}
	return cstring(p), nil
}

// rational decodes the first unsigned rational of e. The denominator may be zero.
func (d *decoder) rational(e entry) (num, den uint32, err error) {
	p := make([]byte, lengths[dtRational])
	if err = d.readAt(p, e.offset()); err != nil {
		return 0, 0, err
	}

	return binary.LittleEndian.Uint32(p[0:4]), binary.LittleEndian.Uint32(p[4:8]), nil
}
