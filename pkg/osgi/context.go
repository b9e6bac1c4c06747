package osgi

import "fmt"

// BundleContext gives access to the bundles installed in a running OSGi framework.
type BundleContext interface {
	// Bundles lists all installed bundles in framework order
	Bundles() ([]Bundle, error)
	// Bundle is the one the test application is installed as
	Bundle() (*Bundle, error)
}

// StaticBundleContext serves a fixed bundle set, handy when bundles are already known (e.g. tests).
type StaticBundleContext struct {
	Installed []Bundle
	Self      int
}

func (c StaticBundleContext) Bundles() ([]Bundle, error) {
	return c.Installed, nil
}

func (c StaticBundleContext) Bundle() (*Bundle, error) {
	for _, b := range c.Installed {
		if b.ID == c.Self {
			return &b, nil
		}
	}
	return nil, errNoSelf(c.Self)
}

func errNoSelf(id int) error {
	return fmt.Errorf("bundle with id '%d' is not installed", id)
}
