package tables

import (
	"strings"
	"testing"

	"github.com/Fenex/vangers-tool/core/prm"
)

// prmFile builds a file body with the signature line prepended.
func prmFile(lines ...string) []byte {
	return []byte(prm.Signature + "\n" + strings.Join(lines, "\n") + "\n")
}

func cursorFor(t *testing.T, lines ...string) *prm.Cursor {
	t.Helper()
	f, err := prm.LoadBytes("test.prm", prmFile(lines...))
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	return f.Cursor()
}
