package rxp

import (
	"errors"
	"testing"
)

func TestLocatorURI(t *testing.T) {
	cases := []struct {
		name    string
		locator Locator
		want    string
	}{
		{"file", FilePath("data/scan.rxp"), "file:data/scan.rxp"},
		{"file_absolute", FilePath("/srv/scans/130501_232206_cut.rxp"), "file:/srv/scans/130501_232206_cut.rxp"},
		{"network", NetworkAddress("192.168.0.125"), "rdtp://192.168.0.125"},
		{"network_with_port", NetworkAddress("scanner.local:20002"), "rdtp://scanner.local:20002"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.locator.URI(); got != tc.want {
				t.Errorf("URI() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocatorEmbeddedNUL(t *testing.T) {
	if err := FilePath("data/scan\x00.rxp").validate(); !errors.Is(err, ErrInvalidLocator) {
		t.Errorf("validate() = %v, want ErrInvalidLocator", err)
	}
	if err := NetworkAddress("host\x00name").validate(); !errors.Is(err, ErrInvalidLocator) {
		t.Errorf("validate() = %v, want ErrInvalidLocator", err)
	}
	if err := FilePath("data/scan.rxp").validate(); err != nil {
		t.Errorf("validate() = %v, want nil", err)
	}
}
