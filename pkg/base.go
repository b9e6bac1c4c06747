package pkg

import (
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
)

type BaseOpts struct {
	kit *Kit

	TmpDir   string
	CacheDir string
}

func NewBaseOpts(kit *Kit) *BaseOpts {
	cv := kit.config.Values()

	return &BaseOpts{
		kit: kit,

		TmpDir:   cv.Base.TmpDir,
		CacheDir: cv.Base.CacheDir,
	}
}

func (o *BaseOpts) PrepareWithChanged() (bool, error) {
	changed := false
	for _, dir := range []string{o.TmpDir, o.CacheDir} {
		dirEnsured, err := pathx.EnsureWithChanged(dir)
		changed = changed || dirEnsured
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}
