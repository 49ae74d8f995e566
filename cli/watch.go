package cli

import (
	"fmt"
	"os"

	"foxholewar/api/warapi"
	"foxholewar/database"
	"foxholewar/notify"
	"foxholewar/tracker"
	"foxholewar/utils"
	"foxholewar/utils/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	scheduleFlag string
	staticFlag   bool
)

func newTracker() (*tracker.Tracker, *database.SnapshotDB, error) {
	db, err := database.Open(cfg.DBDir, cfg.Shard)
	if err != nil {
		return nil, nil, err
	}

	var notifier tracker.Notifier = notify.LogNotifier{}
	if cfg.WebhookURL != "" {
		webhook, err := notify.NewWebhook(cfg.WebhookURL)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		notifier = webhook
	}

	return tracker.New(newClient(), db, notifier), db, nil
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch every map once and report which ones changed since the last sync.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, db, err := newTracker()
		if err != nil {
			return err
		}
		defer db.Close()

		if staticFlag {
			fetched, err := tr.SyncStatic(cmd.Context())
			if err != nil {
				log.Warnf("some static maps failed: %v", err)
			}
			log.Infof("fetched static data for %d maps", fetched)
		}

		report, err := tr.Sync(cmd.Context())
		for _, change := range report.Changes {
			fmt.Fprintln(cmd.OutOrStdout(), utils.HumanizedSprintf("%-24s v%d -> v%d  %d captured",
				warapi.HumanizeMapName(change.MapName), change.OldVersion, change.NewVersion, len(change.Captured)))
		}

		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync on a schedule until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, db, err := newTracker()
		if err != nil {
			return err
		}
		defer db.Close()

		schedule := cfg.WatchSchedule
		if cmd.Flags().Changed("schedule") {
			schedule = scheduleFlag
		}

		log.WithFields(log.Fields{"shard": cfg.Shard, "schedule": schedule}).Info("watching war")
		return tr.Schedule(cmd.Context(), schedule)
	},
}

var dumpDBCmd = &cobra.Command{
	Use:   "dump-db",
	Short: "Print every stored snapshot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.DBDir, cfg.Shard)
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Dump(os.Stdout)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&staticFlag, "static", false, "also fetch static data for maps that have none stored")
	watchCmd.Flags().StringVar(&scheduleFlag, "schedule", "", "cron spec overriding "+config.ENV_WATCH_SCHEDULE)

	rootCmd.AddCommand(syncCmd, watchCmd, dumpDBCmd)
}
