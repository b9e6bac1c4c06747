package osx

import (
	"fmt"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/google/go-cmp/cmp"
)

// Lock tracks whether a prepared resource (e.g. unpacked distribution) still matches its source.
type Lock[T comparable] struct {
	path         string
	dataProvider func() T
}

func NewLock[T comparable](path string, dataProvider func() T) Lock[T] {
	return Lock[T]{path, dataProvider}
}

type LockState[T comparable] struct {
	UpToDate bool
	Locked   T
	Current  T
}

func (l Lock[T]) Lock() error {
	err := fmtx.MarshalToFile(l.path, l.dataProvider())
	if err != nil {
		return fmt.Errorf("cannot save lock file '%s': %w", l.path, err)
	}
	return nil
}

func (l Lock[T]) Unlock() error {
	if err := pathx.DeleteIfExists(l.path); err != nil {
		return fmt.Errorf("cannot delete lock file '%s': %w", l.path, err)
	}
	return nil
}

func (l Lock[T]) IsLocked() bool {
	return pathx.Exists(l.path)
}

func (l Lock[T]) DataLocked() (T, error) {
	var data T
	if !l.IsLocked() {
		return data, fmt.Errorf("cannot read lock file '%s' as it does not exist", l.path)
	}
	if err := fmtx.UnmarshalFile(l.path, &data); err != nil {
		return data, fmt.Errorf("cannot read lock file '%s': %w", l.path, err)
	}
	return data, nil
}

func (l Lock[T]) State() (LockState[T], error) {
	current := l.dataProvider()
	result := LockState[T]{Current: current}
	if !l.IsLocked() {
		return result, nil
	}
	locked, err := l.DataLocked()
	if err != nil {
		return result, err
	}
	result.Locked = locked
	result.UpToDate = cmp.Equal(current, locked)
	return result, nil
}
