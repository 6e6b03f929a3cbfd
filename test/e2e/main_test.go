// Tests e2e: levantan el servidor completo en memoria sobre un puerto
// efímero y ejercitan la API por HTTP real, como lo haría un cliente.
package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/kasadel/mallcore/internal/app"
	"github.com/kasadel/mallcore/internal/config"
	"github.com/kasadel/mallcore/pkg/scenario"
)

var baseURL string

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "e2e: config:", err)
		os.Exit(1)
	}
	cfg.App.Env = "dev"
	cfg.Log.Level = "error"
	cfg.Storage.Driver = "memory"
	cfg.Cache.Kind = "memory"
	// Sin rate limiting: los escenarios disparan ráfagas desde una IP.
	cfg.Rate.Enabled = false

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "e2e: boot:", err)
		os.Exit(1)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Fprintln(os.Stderr, "e2e: listen:", err)
		os.Exit(1)
	}
	baseURL = "http://" + ln.Addr().String()

	go func() { _ = a.Serve(ctx, ln) }()

	if err := scenario.WaitReady(ctx, baseURL, 15*time.Second); err != nil {
		fmt.Fprintln(os.Stderr, "e2e: el servidor no quedó listo:", err)
		cancel()
		os.Exit(1)
	}

	code := m.Run()
	cancel()
	time.Sleep(100 * time.Millisecond) // deja terminar el shutdown
	os.Exit(code)
}

func newConn() *scenario.Conn {
	return scenario.NewConn(baseURL)
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)
	return ctx
}
