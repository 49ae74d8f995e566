package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foxholewar/api/warapi"
	"foxholewar/utils"
	"foxholewar/utils/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	shardFlag   string
	timeoutFlag time.Duration
	baseURLFlag string
	dumpFlag    bool
)

var rootCmd = &cobra.Command{
	Use:           "foxholewar",
	Short:         "Query the Foxhole War API and track map changes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(".env"); err != nil {
			return err
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("shard") {
			shard, err := warapi.ParseShard(shardFlag)
			if err != nil {
				return err
			}
			loaded.Shard = shard
		}
		if cmd.Flags().Changed("timeout") {
			loaded.Timeout = timeoutFlag
		}
		if cmd.Flags().Changed("base-url") {
			loaded.BaseURL = baseURLFlag
		}

		log.SetLevel(loaded.LogLevel)
		cfg = loaded

		return nil
	},
}

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&shardFlag, "shard", string(warapi.DEFAULT_SHARD), "shard to query (live, live-2)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 8*time.Second, "timeout for each request")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API base URL to use instead of the shard's")
	rootCmd.PersistentFlags().BoolVar(&dumpFlag, "dump", false, "print Go syntax dumps instead of JSON")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func newClient() *warapi.Client {
	opts := []warapi.ClientOption{warapi.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, warapi.WithBaseURL(cfg.BaseURL))
	}

	return warapi.NewClient(cfg.Shard, opts...)
}

func output(cmd *cobra.Command, v any) {
	if dumpFlag {
		fmt.Fprintln(cmd.OutOrStdout(), utils.Dump(v))
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), utils.Prettify(v))
}
