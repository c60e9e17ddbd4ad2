package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const libraryPattern = "github.com/coinbase/cb-rsa-go/pkg/cbrsa/..."

// loadLibrary loads every library package except the test helpers.
func loadLibrary(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()

	pkgs, err := packages.Load(&packages.Config{Mode: mode}, libraryPattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var out []*packages.Package
	for _, pkg := range pkgs {
		if isTestHelper(pkg.PkgPath) {
			continue
		}
		out = append(out, pkg)
	}
	if len(out) == 0 {
		t.Fatalf("no packages matched %s", libraryPattern)
	}
	return out
}

func isTestHelper(path string) bool {
	switch path {
	case "github.com/coinbase/cb-rsa-go/pkg/cbrsa/internal/testrand",
		"github.com/coinbase/cb-rsa-go/pkg/cbrsa/internalcheck":
		return true
	}
	return false
}
