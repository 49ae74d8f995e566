package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foxholewar/api/warapi"
	"foxholewar/utils/config"

	"github.com/spf13/pflag"
)

const warJSON = `{
	"warId" : "1e82269a-d82b-4350-b1b1-06a98c983503",
	"warNumber" : 83,
	"winner" : "NONE",
	"conquestStartTime" : 1632326703205,
	"conquestEndTime" : null,
	"resistanceStartTime" : null,
	"requiredVictoryTowns" : 32
}`

func newWarServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != warapi.ENDPOINT_WAR {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(warJSON))
	}))
	t.Cleanup(srv.Close)

	return srv
}

// Runs the root command with args, resetting flags left over from earlier runs.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	cfg = nil

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWarUsesEnvConfig(t *testing.T) {
	srv := newWarServer(t)
	t.Setenv(config.ENV_SHARD, "live-2")
	t.Setenv(config.ENV_TIMEOUT, "2s")
	t.Setenv(config.ENV_BASE_URL, srv.URL)

	out, err := run(t, "war")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Shard != warapi.SHARD_LIVE2 || cfg.Timeout != 2*time.Second {
		t.Errorf("expected env shard and timeout, got %s and %s", cfg.Shard, cfg.Timeout)
	}
	if !strings.Contains(out, `"warNumber": 83`) {
		t.Errorf("expected war data as JSON, got:\n%s", out)
	}
}

func TestFlagsOverrideEnvConfig(t *testing.T) {
	srv := newWarServer(t)
	t.Setenv(config.ENV_SHARD, "live")
	t.Setenv(config.ENV_TIMEOUT, "1s")
	t.Setenv(config.ENV_BASE_URL, "http://127.0.0.1:1")

	out, err := run(t, "--shard", "2", "--timeout", "3s", "--base-url", srv.URL, "war")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Shard != warapi.SHARD_LIVE2 {
		t.Errorf("expected --shard to win, got %s", cfg.Shard)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected --timeout to win, got %s", cfg.Timeout)
	}
	if cfg.BaseURL != srv.URL {
		t.Errorf("expected --base-url to win, got %s", cfg.BaseURL)
	}
	if !strings.Contains(out, "1e82269a-d82b-4350-b1b1-06a98c983503") {
		t.Errorf("expected war id in output, got:\n%s", out)
	}
}

func TestInvalidShardFlag(t *testing.T) {
	srv := newWarServer(t)
	t.Setenv(config.ENV_BASE_URL, srv.URL)

	if _, err := run(t, "--shard", "live-3", "war"); err == nil {
		t.Error("expected unknown shard to fail")
	}
}
