package gen

import (
	"os"
	"path/filepath"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}
	// Not a .go file: a broken file in the package would stop the next go generate
	// run from loading it.
	debugName := filename + ".unformatted"
	p := filepath.Join(outDir, debugName)

	return os.WriteFile(p, content, filePerm)
}
