package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sigquery/internal/app"
	"sigquery/internal/logger"
)

var (
	cfgFile string
	appCtx  *app.App
)

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"home":         "home",
	"keys-dir":     "keys_dir",
	"db-driver":    "database.driver",
	"db-dsn":       "database.dsn",
	"key-bits":     "key_bits",
	"timeout":      "barrier_timeout",
	"passphrase":   "passphrase",
	"metrics-file": "metrics_file",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func Execute() error {
	v := viper.New()
	root := &cobra.Command{
		Use:          "sigquery",
		Short:        "Signed XML query exchange between a requester and a responder",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			logger.Init(cfg.Log)
			appCtx, err = app.New(cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("home", "", "exchange directory (default ./requests)")
	pf.String("keys-dir", "", "sealed key directory (default ~/.sigquery)")
	pf.String("db-driver", "", "database driver: sqlite or postgres")
	pf.String("db-dsn", "", "database file (sqlite) or connection string (postgres)")
	pf.Int("key-bits", 0, "RSA modulus size (default 2048)")
	pf.Duration("timeout", 0, "bound on every phase wait (default 30s)")
	pf.StringP("passphrase", "p", "", "passphrase protecting party keys; enables persisted keys")
	pf.String("metrics-file", "", "write a Prometheus textfile snapshot here on exit")
	pf.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	pf.String("log-format", "", "text or json")
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return err
		}
	}

	root.AddCommand(runCmd(), requestCmd(), seedCmd(), keygenCmd(), fingerprintCmd(), verifyCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}
