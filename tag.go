package exif

import (
	"encoding/binary"
	"fmt"
)

// entry is one 12-byte IFD entry. It is decoded, resolved and discarded.
type entry struct {
	id       uint16
	datatype uint16
	count    uint32
	value    [4]byte // Inline value or offset to the payload.
}

func parseEntry(p []byte) entry {
	e := entry{
		id:       binary.LittleEndian.Uint16(p[0:2]),
		datatype: binary.LittleEndian.Uint16(p[2:4]),
		count:    binary.LittleEndian.Uint32(p[4:8]),
	}
	copy(e.value[:], p[8:12])
	return e
}

// offset interprets the value field as an offset from the TIFF base.
func (e entry) offset() uint32 {
	return binary.LittleEndian.Uint32(e.value[:])
}

// width returns the length of one element of the entry's data type,
// or def when the data type is unknown.
func (e entry) width(def uint32) uint32 {
	if int(e.datatype) < len(lengths) && lengths[e.datatype] != 0 {
		return lengths[e.datatype]
	}
	return def
}

// inline reports whether count elements of size w fit in the value field.
func (e entry) inline(w uint32) bool {
	return uint64(w)*uint64(e.count) <= 4
}

func (e entry) String() string {
	return fmt.Sprintf("{ID: 0x%04x, Type: %d, Count: %d, Value: 0x%08x}", e.id, e.datatype, e.count, e.offset())
}

// A Field is a decoded and formatted tag.
type Field struct {
	Level Level
	Tag   uint16
	Name  string
	Value string
}

// String implements Stringer.
func (f Field) String() string {
	return fmt.Sprintf("%s: %s", f.Name, f.Value)
}

//------------------------//
// Registry               //
//------------------------//

// rule describes where a tag's payload lives and how it is decoded.
type rule int

const (
	ruleScalar   rule = iota // Unsigned integer, usually inline.
	ruleString               // NUL-terminated ASCII.
	ruleRational             // Numerator/denominator pair, always out-of-line.
	ruleSubIFD               // Offset of the Exif sub-IFD.
)

// value holds a decoded payload. Only the members matching the rule are set.
type value struct {
	u        uint32
	s        string
	num, den uint32
}

// definition describes a registered tag. divides is set when render divides
// the rational, which then requires a non-zero denominator.
type definition struct {
	name    string
	rule    rule
	render  func(v value) string
	divides bool
}

// registry maps, per directory level, the tags reported by the decoder.
// Any other tag is skipped.
var registry = map[Level]map[uint16]definition{
	IFD0: {
		tMake:           {name: "Manufacturer", rule: ruleString, render: renderString},
		tModel:          {name: "Model", rule: ruleString, render: renderString},
		tExifIFDPointer: {name: "ExifIFDPointer", rule: ruleSubIFD},
	},
	ExifIFD: {
		tPixelXDimension:  {name: "Width", rule: ruleScalar, render: renderPixels},
		tPixelYDimension:  {name: "Height", rule: ruleScalar, render: renderPixels},
		tISOSpeedRatings:  {name: "ISO", rule: ruleScalar, render: renderUint},
		tDateTimeOriginal: {name: "Date Taken", rule: ruleString, render: renderString},
		tExposureTime:     {name: "Exposure Time", rule: ruleRational, render: renderExposure},
		tFNumber:          {name: "F-stop", rule: ruleRational, render: renderFNumber, divides: true},
		tFocalLength:      {name: "Focal Length", rule: ruleRational, render: renderFocalLength, divides: true},
	},
}

// TagName returns the label used for the tag at the given level.
func TagName(level Level, id uint16) string {
	if def, ok := registry[level][id]; ok {
		return def.name
	}
	return fmt.Sprintf("Unknown(0x%04x)", id)
}

func renderString(v value) string {
	return v.s
}

func renderUint(v value) string {
	return fmt.Sprintf("%d", v.u)
}

func renderPixels(v value) string {
	return fmt.Sprintf("%d pixels", v.u)
}

// renderExposure keeps the fraction as stored, without reduction.
func renderExposure(v value) string {
	return fmt.Sprintf("%d/%d second", v.num, v.den)
}

func renderFNumber(v value) string {
	return fmt.Sprintf("f/%.1f", float64(v.num)/float64(v.den))
}

// renderFocalLength truncates to whole millimeters.
func renderFocalLength(v value) string {
	return fmt.Sprintf("%d mm", v.num/v.den)
}
