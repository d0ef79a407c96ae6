package sound

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.wav"))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

func TestOpenNotWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	test.That(t, os.WriteFile(path, []byte("definitely not RIFF"), 0o644), test.ShouldBeNil)
	_, err := Open(path)
	test.That(t, err, test.ShouldNotBeNil)
}
