package internalcheck

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

var forbiddenImports = map[string]string{
	"math/rand":    "use crypto/rand or an injected io.Reader",
	"math/rand/v2": "use crypto/rand or an injected io.Reader",
}

func TestNoMathRand(t *testing.T) {
	pkgs := loadLibrary(t, packages.NeedSyntax|packages.NeedFiles|packages.NeedName)

	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, imp := range file.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil {
					continue
				}
				if hint, ok := forbiddenImports[path]; ok {
					pos := pkg.Fset.Position(imp.Pos())
					findings = append(findings, fmt.Sprintf("%s: %s imported; %s", pos, path, hint))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("randomness policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
