package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/gateway"
	"github.com/dwikikusuma/storefront/internal/gateway/gatewaytest"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/localstate"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

type testEnv struct {
	rt       *Runtime
	store    *gatewaytest.Store
	clock    *clock.Fake
	cart     *localstate.Memory
	session  *localstate.Memory
	opened   int
	keyboard catalogdomain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	store := gatewaytest.NewStore(clk)

	kb, err := store.Gateway().CreateProduct(context.Background(), catalogdomain.Fields{Name: "Keyboard", Price: "25.50"})
	require.NoError(t, err)
	_, err = store.Gateway().CreateAdminPin(context.Background(), "1234", "Owner")
	require.NoError(t, err)

	env := &testEnv{
		store:    store,
		clock:    clk,
		cart:     localstate.NewMemory(),
		session:  localstate.NewMemory(),
		keyboard: kb,
	}
	env.rt = env.runtime()
	return env
}

// runtime returns a fresh Runtime over the same state, as a new process
// invocation would see it.
func (e *testEnv) runtime() *Runtime {
	return &Runtime{
		Log:          logger.Discard(),
		Clock:        e.clock,
		CartState:    e.cart,
		SessionState: e.session,
		OpenGateway: func() (*gateway.Gateway, error) {
			e.opened++
			return e.store.Gateway(), nil
		},
		CheckoutConcurrency: 2,
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e.rt = e.runtime()
	var out bytes.Buffer
	cmd := NewRootCommand(e.rt)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(&Runtime{})
	for _, path := range [][]string{
		{"products", "list"}, {"products", "show"}, {"products", "search"},
		{"cart", "add"}, {"cart", "set"}, {"cart", "remove"}, {"cart", "clear"}, {"cart", "show"}, {"cart", "watch"},
		{"checkout"},
		{"orders", "show"},
		{"admin", "login"}, {"admin", "logout"}, {"admin", "status"}, {"admin", "create-pin"},
		{"admin", "products", "add"}, {"admin", "products", "edit"}, {"admin", "products", "delete"},
		{"admin", "orders", "list"},
		{"migrate"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestInvalidFormat(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "cart", "show", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProductsCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Keyboard")
	assert.Contains(t, out, "$25.50")

	out, err = env.run(t, "products", "show", env.keyboard.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Keyboard  $25.50")

	out, err = env.run(t, "products", "search", "key", "--format", "json")
	require.NoError(t, err)
	var page struct {
		Products []productView `json:"products"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "25.50", page.Products[0].Price)
}

func TestMigrateWithoutDatabase(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "migrate")
	assert.Error(t, err)
}
