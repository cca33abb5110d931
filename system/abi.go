package system

import (
	"path"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/pkg/errors"
)

// ABISection is the name of the custom section a guest image carries to
// declare the capability revision it was built against.  The section
// payload is the ABI in its String form.
const ABISection = "nolibc.abi"

// HostModule is the module name under which a host serves the
// capability set to WebAssembly guests.
const HostModule = "env"

// DefaultABI is the revision of the capability set defined by this
// package.
var DefaultABI = ABI{
	Name:    "nolibc",
	Version: semver.MustParse("0.1.0"),
}

// ABI identifies a revision of the capability set.  Hosts refuse guest
// images whose declared revision they cannot serve.
type ABI struct {
	Name    string
	Version semver.Version
}

// String renders the ABI as "name/version".
func (abi ABI) String() string {
	return path.Join(abi.Name, abi.Version.String())
}

// Path renders the ABI as a rooted path.
func (abi ABI) Path() string {
	return path.Clean(path.Join("/", abi.String()))
}

// Compatible reports whether a program declaring other can run against
// abi.  Revisions are compatible when they agree on name and major
// version.
func (abi ABI) Compatible(other ABI) bool {
	return abi.Name == other.Name &&
		abi.Version.Major == other.Version.Major
}

// ParseABI parses the "name/version" form produced by String.  A
// leading slash is tolerated.
func ParseABI(s string) (ABI, error) {
	dir, file := path.Split(path.Clean(strings.TrimPrefix(s, "/")))

	version, err := semver.ParseTolerant(file)
	if err != nil {
		return ABI{}, errors.Wrap(err, "parse version")
	}

	return ABI{
		Name:    strings.TrimSuffix(dir, "/"),
		Version: version,
	}, nil
}
