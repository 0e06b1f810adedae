package engine

import (
	"fmt"

	"github.com/wippyai/jvm-bridge/errors"
)

// Version is a JNI interface version.
type Version int32

const (
	V1_1 Version = 0x00010001
	V1_2 Version = 0x00010002
	V1_4 Version = 0x00010004
	V1_6 Version = 0x00010006
	V1_8 Version = 0x00010008

	DefaultVersion = V1_6
)

var versionNames = map[Version]string{
	V1_1: "1.1",
	V1_2: "1.2",
	V1_4: "1.4",
	V1_6: "1.6",
	V1_8: "1.8",
}

// Versions lists the supported interface versions, oldest first.
func Versions() []Version {
	return []Version{V1_1, V1_2, V1_4, V1_6, V1_8}
}

// Valid reports whether v is one of the supported versions.
func (v Version) Valid() bool {
	_, ok := versionNames[v]
	return ok
}

func (v Version) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Version(%#x)", int32(v))
}

// ParseVersion accepts "1.6" style names. The empty string selects DefaultVersion.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return DefaultVersion, nil
	}
	for v, name := range versionNames {
		if name == s {
			return v, nil
		}
	}
	return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Value(s).
		Detail("unsupported JNI version %q", s).
		Build()
}
