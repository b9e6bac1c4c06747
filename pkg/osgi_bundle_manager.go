package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	BundlesPath     = "/system/console/bundles"
	BundlesPathJson = BundlesPath + ".json"
)

// OSGiBundleManager reads bundles of a running Karaf through Felix web console. It serves as bundle context.
type OSGiBundleManager struct {
	http *HTTP

	SelfID               int
	StableTimeout        time.Duration
	StableInterval       time.Duration
	SymbolicNamesIgnored []string
}

func NewOSGiBundleManager(kit *Kit, http *HTTP) *OSGiBundleManager {
	cv := kit.config.Values()

	return &OSGiBundleManager{
		http: http,

		SelfID:               osgi.SystemBundleID,
		StableTimeout:        cv.Karaf.Bundle.StableTimeout,
		StableInterval:       cv.Karaf.Bundle.StableInterval,
		SymbolicNamesIgnored: cv.Karaf.Bundle.SymbolicNamesIgnored,
	}
}

func (bm *OSGiBundleManager) String() string {
	return fmt.Sprintf("karaf '%s'", bm.http.BaseURL())
}

func (bm *OSGiBundleManager) New(symbolicName string) OSGiBundle {
	return OSGiBundle{
		manager:      bm,
		symbolicName: symbolicName,
	}
}

func (bm *OSGiBundleManager) List() (*osgi.BundleList, error) {
	resp, err := bm.http.Request().Get(BundlesPathJson)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot request bundle list: %w", bm, err)
	}
	defer resp.RawBody().Close()
	if resp.IsError() {
		return nil, fmt.Errorf("%s: cannot request bundle list: %s", bm, resp.Status())
	}
	var res osgi.BundleList
	if err = fmtx.UnmarshalJSON(resp.RawBody(), &res); err != nil {
		return nil, fmt.Errorf("%s: cannot parse bundle list: %w", bm, err)
	}
	return &res, nil
}

// Find returns nil when no bundle has the given symbolic name.
func (bm *OSGiBundleManager) Find(symbolicName string) (*osgi.Bundle, error) {
	bundles, err := bm.List()
	if err != nil {
		return nil, fmt.Errorf("%s: cannot find bundle '%s': %w", bm, symbolicName, err)
	}
	item, found := lo.Find(bundles.List, func(b osgi.Bundle) bool { return symbolicName == b.SymbolicName })
	if found {
		return &item, nil
	}
	return nil, nil
}

func (bm *OSGiBundleManager) Bundles() ([]osgi.Bundle, error) {
	bundles, err := bm.List()
	if err != nil {
		return nil, err
	}
	return bundles.List, nil
}

func (bm *OSGiBundleManager) Bundle() (*osgi.Bundle, error) {
	bundles, err := bm.Bundles()
	if err != nil {
		return nil, err
	}
	item, found := lo.Find(bundles, func(b osgi.Bundle) bool { return b.ID == bm.SelfID })
	if !found {
		return nil, fmt.Errorf("%s: bundle with id '%d' is not installed", bm, bm.SelfID)
	}
	return &item, nil
}

func (bm *OSGiBundleManager) Start(id int) error {
	return bm.action(id, "start")
}

func (bm *OSGiBundleManager) Stop(id int) error {
	return bm.action(id, "stop")
}

func (bm *OSGiBundleManager) action(id int, action string) error {
	log.Infof("%s: requesting action '%s' on bundle '%d'", bm, action, id)
	response, err := bm.http.RequestFormData(map[string]any{"action": action}).
		Post(fmt.Sprintf("%s/%d", BundlesPath, id))
	if err != nil {
		return fmt.Errorf("%s: cannot %s bundle '%d': %w", bm, action, id, err)
	}
	defer response.RawBody().Close()
	if response.IsError() {
		return fmt.Errorf("%s: cannot %s bundle '%d': %s", bm, action, id, response.Status())
	}
	return nil
}

// AwaitStable polls until all bundles not matching ignored patterns are started or resolved fragments.
func (bm *OSGiBundleManager) AwaitStable(ctx context.Context) error {
	ignored, err := compileGlobs(bm.SymbolicNamesIgnored)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, bm.StableTimeout)
	defer cancel()
	ticker := time.NewTicker(bm.StableInterval)
	defer ticker.Stop()
	for {
		bundles, unstable, err := bm.unstable(ignored)
		if err != nil {
			log.Warn(err)
		} else if len(unstable) == 0 {
			log.Infof("%s: bundles are stable (%s)", bm, bundles.StablePercent())
			return nil
		} else {
			log.Infof("%s: awaiting stable bundles (%s, %d unstable, e.g. %s)", bm, bundles.StablePercent(), len(unstable), unstable[0])
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: awaiting stable bundles reached timeout after %s: %w", bm, bm.StableTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (bm *OSGiBundleManager) unstable(ignored []glob.Glob) (*osgi.BundleList, []osgi.Bundle, error) {
	bundles, err := bm.List()
	if err != nil {
		return nil, nil, err
	}
	if bundles.StatusUnknown() {
		return nil, nil, fmt.Errorf("%s: bundle status is unknown", bm)
	}
	unstable := lo.Filter(bundles.FindUnstable(), func(b osgi.Bundle, _ int) bool {
		return !lo.SomeBy(ignored, func(g glob.Glob) bool { return g.Match(b.SymbolicName) })
	})
	return bundles, unstable, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var result []glob.Glob
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("cannot compile bundle symbolic name pattern '%s': %w", pattern, err)
		}
		result = append(result, g)
	}
	return result, nil
}
