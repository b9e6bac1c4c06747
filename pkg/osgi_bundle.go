package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	log "github.com/sirupsen/logrus"
)

type OSGiBundle struct {
	manager *OSGiBundleManager

	symbolicName string
}

func (b OSGiBundle) SymbolicName() string {
	return b.symbolicName
}

type OSGiBundleState struct {
	data *osgi.Bundle

	SymbolicName string         `yaml:"symbolic_name" json:"symbolicName"`
	Exists       bool           `yaml:"exists" json:"exists"`
	Details      map[string]any `yaml:"details" json:"details"`
}

func (b OSGiBundle) State() (*OSGiBundleState, error) {
	data, err := b.manager.Find(b.symbolicName)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &OSGiBundleState{
			SymbolicName: b.symbolicName,
			Exists:       false,
		}, nil
	}

	return &OSGiBundleState{
		data: data,

		SymbolicName: b.symbolicName,
		Exists:       true,
		Details: map[string]any{
			"id":       data.ID,
			"state":    data.State,
			"category": data.Category,
			"fragment": data.Fragment,
			"version":  data.Version,
		},
	}, nil
}

func (s OSGiBundleState) Started() bool {
	return s.data != nil && s.data.Stable()
}

func (b OSGiBundle) StartWithChanged() (bool, error) {
	state, err := b.assumeExists()
	if err != nil {
		return false, err
	}
	if state.Started() {
		return false, nil
	}
	return true, b.manager.Start(state.data.ID)
}

func (b OSGiBundle) StopWithChanged() (bool, error) {
	state, err := b.assumeExists()
	if err != nil {
		return false, err
	}
	if !state.Started() {
		return false, nil
	}
	return true, b.manager.Stop(state.data.ID)
}

func (b OSGiBundle) assumeExists() (*OSGiBundleState, error) {
	state, err := b.State()
	if err != nil {
		return state, err
	}
	if !state.Exists {
		return state, fmt.Errorf("%s: %s does not exist", b.manager, b)
	}
	return state, nil
}

func (b OSGiBundle) AwaitStarted(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for {
		state, err := b.State()
		if err != nil {
			log.Warn(err)
		} else if state.Started() {
			return nil
		}
		log.Infof("%s: awaiting %s started", b.manager, b)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: awaiting %s started reached timeout after %s", b.manager, b, timeout)
		case <-time.After(b.manager.StableInterval):
		}
	}
}

func (b OSGiBundle) String() string {
	return fmt.Sprintf("bundle '%s'", b.symbolicName)
}
