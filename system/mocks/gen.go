//go:generate mockgen -source=gen.go -destination=mock_system.go -package=mocks

package mocks

import (
	"github.com/nolibc/go/system"
)

// Interface embeds system.Interface to provide a clean interface for mocking
type Interface interface {
	system.Interface
}
