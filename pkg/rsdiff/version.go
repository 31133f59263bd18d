// Package rsdiff provides rsdiff version information.
package rsdiff

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of rsdiff.
	VersionMajor = 0
	// VersionMinor represents the current minor version of rsdiff.
	VersionMinor = 2
	// VersionPatch represents the current patch version of rsdiff.
	VersionPatch = 0
)

// Version provides a stringified representation of the current rsdiff
// version.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
