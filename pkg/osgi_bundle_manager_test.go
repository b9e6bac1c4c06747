package pkg_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/osgi"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundlesJSON = `{
  "status": "Bundle information: 3 bundles in total - all 3 bundles active.",
  "s": [3, 2, 1, 0, 0],
  "data": [
    {"id": 0, "name": "System Bundle", "fragment": false, "stateRaw": 32, "state": "Active", "version": "4.0.3", "symbolicName": "org.apache.felix.framework", "category": ""},
    {"id": 52, "name": "camel-core", "fragment": false, "stateRaw": 32, "state": "Active", "version": "2.15.1", "symbolicName": "org.apache.camel.camel-core", "category": ""},
    {"id": 53, "name": "Fragment", "fragment": true, "stateRaw": 4, "state": "Fragment", "version": "1.0.0", "symbolicName": "org.example.fragment", "category": ""}
  ]
}`

type consoleServer struct {
	*httptest.Server

	mu      sync.Mutex
	body    string
	actions []string
}

func newConsoleServer(t *testing.T, body string) *consoleServer {
	t.Helper()

	result := &consoleServer{body: body}
	result.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok || user != "karaf" || password != "karaf" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		result.mu.Lock()
		defer result.mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == pkg.BundlesPathJson:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(result.body))
		case r.Method == http.MethodPost:
			_ = r.ParseForm()
			result.actions = append(result.actions, r.URL.Path+" "+r.PostForm.Get("action"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(result.Close)
	return result
}

func newBundleManager(server *consoleServer) *pkg.OSGiBundleManager {
	kit := pkg.NewKit(cfg.DefaultConfig())
	bm := pkg.NewOSGiBundleManager(kit, pkg.NewHTTP(kit, server.URL))
	bm.StableInterval = 10 * time.Millisecond
	bm.StableTimeout = time.Second
	return bm
}

func TestOSGiBundleManagerList(t *testing.T) {
	t.Parallel()

	bm := newBundleManager(newConsoleServer(t, bundlesJSON))

	list, err := bm.List()
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total())
	assert.Len(t, list.List, 3)
	assert.False(t, list.StatusUnknown())
	assert.Empty(t, list.FindUnstable())
}

func TestOSGiBundleManagerFind(t *testing.T) {
	t.Parallel()

	bm := newBundleManager(newConsoleServer(t, bundlesJSON))

	found, err := bm.Find("org.apache.camel.camel-core")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 52, found.ID)

	missing, err := bm.Find("org.example.missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOSGiBundleManagerBundleContext(t *testing.T) {
	t.Parallel()

	var bc osgi.BundleContext = newBundleManager(newConsoleServer(t, bundlesJSON))

	self, err := bc.Bundle()
	require.NoError(t, err)
	assert.Equal(t, "org.apache.felix.framework", self.SymbolicName)

	bundles, err := bc.Bundles()
	require.NoError(t, err)
	assert.Len(t, bundles, 3)
}

func TestOSGiBundleManagerUnauthorized(t *testing.T) {
	t.Parallel()

	server := newConsoleServer(t, bundlesJSON)
	kit := pkg.NewKit(cfg.DefaultConfig())
	client := pkg.NewHTTP(kit, server.URL)
	client.SetCredentials("karaf", "wrong")

	_, err := pkg.NewOSGiBundleManager(kit, client).List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOSGiBundleStartStop(t *testing.T) {
	t.Parallel()

	server := newConsoleServer(t, bundlesJSON)
	bm := newBundleManager(server)

	changed, err := bm.New("org.apache.camel.camel-core").StartWithChanged()
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = bm.New("org.apache.camel.camel-core").StopWithChanged()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{pkg.BundlesPath + "/52 stop"}, server.actions)

	_, err = bm.New("org.example.missing").StartWithChanged()
	assert.Error(t, err)
}

func TestOSGiBundleManagerAwaitStable(t *testing.T) {
	t.Parallel()

	server := newConsoleServer(t, `{"status": "", "s": [1, 0, 0, 0, 1], "data": [
	  {"id": 60, "fragment": false, "stateRaw": 2, "state": "Installed", "symbolicName": "org.example.broken"}
	]}`)
	bm := newBundleManager(server)

	err := bm.AwaitStable(context.Background())
	assert.Error(t, err)

	bm.SymbolicNamesIgnored = []string{"org.example.*"}
	assert.NoError(t, bm.AwaitStable(context.Background()))
}

func TestOSGiBundleManagerAwaitStableLogsProgress(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	bm := newBundleManager(newConsoleServer(t, bundlesJSON))
	require.NoError(t, bm.AwaitStable(context.Background()))

	messages := lo.Map(hook.AllEntries(), func(e *log.Entry, _ int) string { return e.Message })
	assert.Contains(t, messages, bm.String()+": bundles are stable (3/3=100%)")
}
