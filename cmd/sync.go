/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pushes your observation state to the remote store",
	Long: `sync upserts one record per species into the remote PostgreSQL
store, addressed by (user, species). A failure on one species does not
stop the rest. With --changed-only, records whose state matches the
remote overlay are skipped.`,
	Run: func(cmd *cobra.Command, _ []string) {
		y, st, cfg := session(cmd)
		defer st.Close()

		if !st.Enabled() {
			slog.Info("Remote syncing is disabled; set PgHost to enable it")
			os.Exit(0)
		}

		ctx := context.Background()
		rows, baseline, err := y.Unified(ctx)
		if err != nil {
			slog.Error("Cannot build unified view", "error", err)
			os.Exit(1)
		}

		changedOnly, _ := cmd.Flags().GetBool("changed-only")
		if changedOnly {
			rows = sighting.Changed(rows, baseline)
			if len(rows) == 0 {
				slog.Info("Nothing changed since the last sync")
				os.Exit(0)
			}
		}

		synced, failed := y.Sync(ctx, rows)
		slog.Info("Synced to remote store",
			"records", humanize.Comma(int64(synced)), "user", cfg.UserID)
		if failed > 0 {
			slog.Warn("Some records failed to sync", "failed", failed)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("changed-only", false,
		"skip records that match the remote overlay")
}
