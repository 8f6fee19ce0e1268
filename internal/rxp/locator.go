package rxp

import (
	"errors"
	"strings"
)

// ErrInvalidLocator is returned when a source locator contains an embedded
// NUL byte, which the engine's C string interface cannot represent.
var ErrInvalidLocator = errors.New("locator contains an embedded NUL byte")

type locatorKind int

const (
	locatorFile locatorKind = iota
	locatorNetwork
)

// Locator identifies a scan data source: either a local rxp file or a
// network-attached scanner. Immutable once constructed.
type Locator struct {
	kind  locatorKind
	value string
}

// FilePath returns a Locator for a local rxp file.
func FilePath(path string) Locator {
	return Locator{kind: locatorFile, value: path}
}

// NetworkAddress returns a Locator for a scanner reachable over the vendor's
// rdtp transport.
func NetworkAddress(addr string) Locator {
	return Locator{kind: locatorNetwork, value: addr}
}

// URI serializes the locator into the engine's URI format: "file:<path>" for
// files, "rdtp://<address>" for network sources. These formats are fixed by
// the engine.
func (l Locator) URI() string {
	if l.kind == locatorNetwork {
		return "rdtp://" + l.value
	}
	return "file:" + l.value
}

func (l Locator) validate() error {
	if strings.ContainsRune(l.value, 0) {
		return ErrInvalidLocator
	}
	return nil
}
