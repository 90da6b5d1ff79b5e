package ir

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language is the closed set of source languages this system understands.
type Language string

const (
	Rust       Language = "rust"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// ErrUnsupportedExtension is returned by LanguageForPath when the file
// extension doesn't map to a known Language; the caller skips the file
// with a warning rather than treating it as fatal (spec §7).
type ErrUnsupportedExtension struct {
	Path string
	Ext  string
}

func (e *ErrUnsupportedExtension) Error() string {
	return fmt.Sprintf("unsupported extension %q for %s", e.Ext, e.Path)
}

// LanguageForPath selects a Language from a file's extension:
// rs -> Rust, ts|js -> TypeScript, tsx|jsx -> TSX.
func LanguageForPath(path string) (Language, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "rs":
		return Rust, nil
	case "ts", "js":
		return TypeScript, nil
	case "tsx", "jsx":
		return TSX, nil
	default:
		return "", &ErrUnsupportedExtension{Path: path, Ext: ext}
	}
}
