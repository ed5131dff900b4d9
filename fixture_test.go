package exif

import (
	"bytes"
	"encoding/binary"
	"io"
)

// fixtureEntry describes an IFD entry of a synthetic file. When Data is set
// it is stored out-of-line and Value is replaced by its offset.
type fixtureEntry struct {
	ID    uint16
	Type  uint16
	Count uint32
	Value uint32
	Data  []byte
}

// buildJPEG lays out the JPEG prefix, IFD0, the Exif sub-IFD (when sub is
// not nil) and the out-of-line payloads, in that order. An ExifIFDPointer
// entry without Value points to the Exif sub-IFD.
func buildJPEG(ifd0, sub []fixtureEntry) []byte {
	ifdSize := func(entries []fixtureEntry) uint32 {
		return countLen + ifdLen*uint32(len(entries)) + 4
	}

	subOff := 8 + ifdSize(ifd0)
	dataOff := subOff
	if sub != nil {
		dataOff += ifdSize(sub)
	}

	var payload bytes.Buffer
	writeIFD := func(w *bytes.Buffer, entries []fixtureEntry) {
		binary.Write(w, binary.LittleEndian, uint16(len(entries)))
		for _, e := range entries {
			v := e.Value
			switch {
			case e.Data != nil:
				v = dataOff + uint32(payload.Len())
				payload.Write(e.Data)
			case e.ID == tExifIFDPointer && v == 0:
				v = subOff
			}
			binary.Write(w, binary.LittleEndian, e.ID)
			binary.Write(w, binary.LittleEndian, e.Type)
			binary.Write(w, binary.LittleEndian, e.Count)
			binary.Write(w, binary.LittleEndian, v)
		}
		binary.Write(w, binary.LittleEndian, uint32(0)) // No next IFD.
	}

	var tiff bytes.Buffer
	tiff.WriteString(leOrder)
	binary.Write(&tiff, binary.LittleEndian, uint16(0x2A))
	binary.Write(&tiff, binary.LittleEndian, uint32(8))
	writeIFD(&tiff, ifd0)
	if sub != nil {
		writeIFD(&tiff, sub)
	}
	tiff.Write(payload.Bytes())

	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&b, binary.BigEndian, uint16(2+6+tiff.Len()))
	b.WriteString("Exif\x00\x00")
	b.Write(tiff.Bytes())
	return b.Bytes()
}

// rat encodes an unsigned rational.
func rat(num, den uint32) []byte {
	p := make([]byte, 8)
	binary.LittleEndian.PutUint32(p[0:4], num)
	binary.LittleEndian.PutUint32(p[4:8], den)
	return p
}

// cameraIFDs returns the directories of a typical camera file.
func cameraIFDs() (ifd0, sub []fixtureEntry) {
	ifd0 = []fixtureEntry{
		{ID: tMake, Type: dtASCII, Count: 6, Data: []byte("Canon\x00")},
		{ID: tModel, Type: dtASCII, Count: 14, Data: []byte("Canon EOS 80D\x00")},
		{ID: 0x0112, Type: dtShort, Count: 1, Value: 1}, // Orientation
		{ID: tExifIFDPointer, Type: dtLong, Count: 1},
	}
	sub = []fixtureEntry{
		{ID: tExposureTime, Type: dtRational, Count: 1, Data: rat(1, 60)},
		{ID: tFNumber, Type: dtRational, Count: 1, Data: rat(28, 10)},
		{ID: tISOSpeedRatings, Type: dtShort, Count: 1, Value: 100},
		{ID: tDateTimeOriginal, Type: dtASCII, Count: 20, Data: []byte("2020:01:02 03:04:05\x00")},
		{ID: tFocalLength, Type: dtRational, Count: 1, Data: rat(507, 10)},
		{ID: tPixelXDimension, Type: dtShort, Count: 1, Value: 6000},
		{ID: tPixelYDimension, Type: dtShort, Count: 1, Value: 4000},
	}
	return
}

const cameraOutput = `Manufacturer: Canon
Model: Canon EOS 80D
Exposure Time: 1/60 second
F-stop: f/2.8
ISO: 100
Date Taken: 2020:01:02 03:04:05
Focal Length: 50 mm
Width: 6000 pixels
Height: 4000 pixels
`

// seekRecorder records every seek that moves the cursor.
type seekRecorder struct {
	io.ReadSeeker
	seeks []int64
}

func (s *seekRecorder) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekCurrent || offset != 0 {
		s.seeks = append(s.seeks, offset)
	}
	return s.ReadSeeker.Seek(offset, whence)
}
