// Package common holds helpers shared by the loaders and the generator.
package common

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgName returns the name a file refers to an import by: alias when set, otherwise the
// name assumed from the import path the way goimports does it. Returns empty string if
// pkgPath is empty.
func PkgName(pkgPath, alias string) string {
	if alias != "" {
		return alias
	}

	if pkgPath == "" {
		return ""
	}

	name := path.Base(pkgPath)
	if majorVersion.MatchString(name) && strings.Contains(pkgPath, "/") {
		name = path.Base(path.Dir(pkgPath))
	}

	name = strings.TrimPrefix(name, "go-")

	if i := strings.IndexFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); i >= 0 {
		name = name[:i]
	}

	return name
}
