// Package internalcheck holds source policy tests for cb-rsa-go.
//
// The tests load the library packages with golang.org/x/tools/go/packages and
// walk their syntax trees. They fail the build when library code draws from
// math/rand or formats values with %x, which is how key material usually ends
// up in logs.
//
// # Internal Use Only
//
// The package has no exported API and should not be imported.
package internalcheck
