package engine

import "errors"

// ErrUnavailable is returned by Default when no native engine implementation
// was compiled into the binary.
var ErrUnavailable = errors.New("native scan engine not available in this build")

var native Engine

// Register installs the native engine implementation. The cgo binding
// package, when built in, calls this from its init function.
func Register(e Engine) {
	native = e
}

// Default returns the registered native engine, or ErrUnavailable when the
// binary was built without the vendor library.
func Default() (Engine, error) {
	if native == nil {
		return nil, ErrUnavailable
	}
	return native, nil
}
