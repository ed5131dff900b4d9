package exif

// A JPEG file carrying EXIF data starts with a fixed 20-byte prefix:
//
//  - SOI marker, APP1 marker and APP1 length (2 bytes each),
//  - the "Exif" signature followed by a 2-byte terminator,
//  - the TIFF header: byte order ("II" or "MM"), version and the offset to IFD0.
//
// Every offset found in an IFD entry is relative to the TIFF base, which is
// the position of the byte order marker (absolute offset 12).
// The decoder assumes IFD0 immediately follows the header, so the top-level
// tag count is read at offset 20 without seeking.

const (
	headerLen = 20 // Length of the fixed file prefix in bytes.
	tiffBase  = 12 // Absolute position of the TIFF header.

	signature = "Exif"
	leOrder   = "II" // Intel, little-endian.
	beOrder   = "MM" // Motorola, big-endian.

	ifdLen   = 12 // Length of an IFD entry in bytes.
	countLen = 2  // Length of the IFD entry count in bytes.

	// DefaultMaxPayload is the largest out-of-line payload read by default.
	// An APP1 segment cannot be larger.
	DefaultMaxPayload = 0xFFFF
)

// Data types (TIFF 6.0, p. 14-16).
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
)

// The length of one instance of each data type in bytes.
var lengths = [...]uint32{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

// Tags of IFD0.
const (
	tMake           = 271
	tModel          = 272
	tExifIFDPointer = 0x8769
)

// Tags of the Exif sub-IFD.
const (
	tExposureTime     = 0x829a
	tFNumber          = 0x829d
	tISOSpeedRatings  = 0x8827
	tDateTimeOriginal = 0x9003
	tFocalLength      = 0x920a
	tPixelXDimension  = 0xa002
	tPixelYDimension  = 0xa003
)

// Level identifies the directory a field was found in.
type Level int

const (
	// IFD0 is the top-level directory.
	IFD0 Level = iota
	// ExifIFD is the sub-directory pointed to by the ExifIFDPointer tag.
	ExifIFD
)

func (l Level) String() string {
	switch l {
	case IFD0:
		return "IFD0"
	case ExifIFD:
		return "Exif"
	default:
		return "Unknown"
	}
}
