package rsdiff

import (
	"fmt"
	"testing"
)

// TestVersionMatchesComponents verifies that the stringified version reflects
// the version constants.
func TestVersionMatchesComponents(t *testing.T) {
	expected := fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if Version != expected {
		t.Errorf("version string incorrect: %q != %q", Version, expected)
	}
}
