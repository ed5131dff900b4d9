package exif

type FixtureEntry = fixtureEntry

var (
	BuildJPEG  = buildJPEG
	Rational   = rat
	CameraIFDs = cameraIFDs
)

const CameraOutput = cameraOutput
