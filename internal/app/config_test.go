package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/services/identity"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "requests", cfg.Home)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 2048, cfg.KeyBits)
	require.Equal(t, 30*time.Second, cfg.BarrierTimeout)
	require.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadConfig_Precedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sigquery.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
home: from-file
barrier_timeout: 5s
database:
  dsn: file.db
log:
  format: json
`), 0o600))

	t.Setenv("SIGQUERY_DATABASE_DSN", "env.db")
	t.Setenv("SIGQUERY_KEY_BITS", "3072")

	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("home", "", "")
	require.NoError(t, flags.Parse([]string{"--home", "from-flag"}))
	require.NoError(t, v.BindPFlag("home", flags.Lookup("home")))

	cfg, err := LoadConfig(v, file)
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.Home)
	require.Equal(t, "env.db", cfg.Database.DSN)
	require.Equal(t, 3072, cfg.KeyBits)
	require.Equal(t, 5*time.Second, cfg.BarrierTimeout)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SIGQUERY_KEY_BITS", "1024")
	_, err := LoadConfig(viper.New(), "")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestWire_KeyProvider(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	cfg.Home = filepath.Join(t.TempDir(), "requests")
	cfg.KeysDir = t.TempDir()

	w, err := NewWire(cfg)
	require.NoError(t, err)
	require.IsType(t, crypto.RSAProvider{}, w.KeyProvider(domain.Requester))

	w.cfg.Passphrase = "Correct-Horse-42"
	p, ok := w.KeyProvider(domain.Responder).(identity.StoredProvider)
	require.True(t, ok)
	require.Equal(t, "responder", p.Name)

	_, err = os.Stat(filepath.Join(cfg.Home, "results", "signed"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
