package customer

import (
	"context"

	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// ReferencePhone is the one customer known to the reference directory.
const (
	ReferencePhone = "03001234567"
	ReferenceName  = "Ali Khan"
)

// StaticDirectory resolves phones by exact string match against a fixed map.
type StaticDirectory map[string]string

var _ ports.Directory = StaticDirectory(nil)

// ReferenceDirectory returns the directory the register ships with when no
// directory service is configured.
func ReferenceDirectory() StaticDirectory {
	return StaticDirectory{ReferencePhone: ReferenceName}
}

func (d StaticDirectory) ResolveByPhone(_ context.Context, phone string) (string, bool, error) {
	name, ok := d[phone]
	return name, ok, nil
}
