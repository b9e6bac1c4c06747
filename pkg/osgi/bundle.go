package osgi

import (
	"bytes"
	"fmt"

	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/stringsx"
	"github.com/samber/lo"
)

// BundleList is the Felix web console 'bundles.json' response.
type BundleList struct {
	Status  string   `json:"status" yaml:"status"`
	Numbers []int    `json:"s" yaml:"numbers"`
	List    []Bundle `json:"data" yaml:"list"`
}

func (bl *BundleList) number(index int) int {
	if index >= len(bl.Numbers) {
		return 0
	}
	return bl.Numbers[index]
}

func (bl *BundleList) Total() int {
	return bl.number(0)
}

func (bl *BundleList) Active() int {
	return bl.number(1)
}

func (bl *BundleList) ActiveFragments() int {
	return bl.number(2)
}

func (bl *BundleList) Resolved() int {
	return bl.number(3)
}

func (bl *BundleList) Installed() int {
	return bl.number(4)
}

func (bl *BundleList) StatusUnknown() bool {
	return len(bl.List) == 0
}

func (bl *BundleList) StablePercent() string {
	return stringsx.PercentExplained(bl.Total()-(bl.Resolved()+bl.Installed()), bl.Total(), 0)
}

func (bl *BundleList) FindUnstable() []Bundle {
	return lo.Filter(bl.List, func(b Bundle, _ int) bool { return !b.Stable() })
}

func (bl BundleList) MarshalText() string {
	bs := bytes.NewBufferString("")
	bs.WriteString(fmtx.TblMap("stats", "stat", "value", map[string]any{
		"total":     bl.Total(),
		"active":    bl.Active(),
		"fragments": bl.ActiveFragments(),
		"resolved":  bl.Resolved(),
	}))
	bs.WriteString("\n")
	bs.WriteString(fmtx.TblRows("list", []string{"id", "symbolic name", "state", "version"}, lo.Map(bl.List, func(b Bundle, _ int) map[string]any {
		return map[string]any{
			"id":            b.ID,
			"symbolic name": b.SymbolicName,
			"state":         b.State,
			"version":       b.Version,
		}
	})))
	return bs.String()
}

// Bundle is a deployable module installed in the OSGi framework, identified by its symbolic name.
type Bundle struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Fragment     bool   `json:"fragment" yaml:"fragment"`
	StateRaw     int    `json:"stateRaw" yaml:"state_raw"`
	State        string `json:"state" yaml:"state"`
	Version      string `json:"version" yaml:"version"`
	SymbolicName string `json:"symbolicName" yaml:"symbolic_name"`
	Category     string `json:"category" yaml:"category"`
}

// Stable means started: active for regular bundles, resolved for fragments (these are never activated).
func (b Bundle) Stable() bool {
	if b.Fragment {
		return b.StateRaw == int(StateResolved)
	}
	return b.StateRaw == int(StateActive)
}

func (b Bundle) String() string {
	return fmt.Sprintf("bundle '%s' (id: %d, state: %s)", b.SymbolicName, b.ID, b.State)
}

func (b Bundle) MarshalText() string {
	return fmtx.TblProps(map[string]any{
		"id":            b.ID,
		"symbolic name": b.SymbolicName,
		"name":          b.Name,
		"version":       b.Version,
		"state":         b.State,
		"fragment":      b.Fragment,
		"category":      b.Category,
	})
}

type StateRaw int

const (
	StateUninstalled StateRaw = 0x00000001
	StateInstalled   StateRaw = 0x00000002
	StateResolved    StateRaw = 0x00000004
	StateStarting    StateRaw = 0x00000008
	StateStopping    StateRaw = 0x00000010
	StateActive      StateRaw = 0x00000020
	StateUnknown     StateRaw = -1
)

const (
	// SystemBundleID is the id of the framework bundle itself
	SystemBundleID = 0
)
