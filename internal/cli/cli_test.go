package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/breadcrumb/foodseed/internal/testutil"
)

// testEnv is a catalog, a mirror path and a config file pointing at both,
// all inside one temp directory.
type testEnv struct {
	dir     string
	catalog string
	mirror  string
	config  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalogPath := testutil.WriteCatalog(t, testutil.FixtureCatalog())
	dir := filepath.Dir(catalogPath)

	env := &testEnv{
		dir:     dir,
		catalog: catalogPath,
		mirror:  filepath.Join(dir, "mirror.db"),
		config:  filepath.Join(dir, "foodseed.toml"),
	}

	toml := fmt.Sprintf(`[catalog]
path = %q
backup = true

[generator]
count = 5
seed = 42

[database]
path = %q
`, env.catalog, env.mirror)
	require.NoError(t, os.WriteFile(env.config, []byte(toml), 0644))

	return env
}

// run executes the root command with --config prepended and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--config", e.config}, args...)...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), err
}

// resetFlags restores every flag in the tree to its default so values and
// Changed state from one execution do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
