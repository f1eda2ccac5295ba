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
	"time"

	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

// markAllCmd represents the mark-all command
var markAllCmd = &cobra.Command{
	Use:   "mark-all",
	Short: "Marks every species as seen today",
	Run: func(cmd *cobra.Command, _ []string) {
		bulkEdit(cmd, "Marked all species as seen", func(rows []sighting.Row) {
			sighting.MarkAll(rows, time.Now().Format(dateLayout))
		})
	},
}

// clearAllCmd represents the clear-all command
var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Clears the seen flag and first-seen date of every species",
	Long: `clear-all resets the seen state of the whole list. Notes are kept
unless --notes is given, since they are independent of the seen flag.`,
	Run: func(cmd *cobra.Command, _ []string) {
		withNotes, _ := cmd.Flags().GetBool("notes")
		bulkEdit(cmd, "Cleared all species", func(rows []sighting.Row) {
			sighting.ClearAll(rows, withNotes)
		})
	},
}

// bulkEdit loads the unified view, applies an edit to every row and
// saves the dataset file.
func bulkEdit(cmd *cobra.Command, msg string, edit func([]sighting.Row)) {
	y, st, _ := session(cmd)
	defer st.Close()

	rows, _, err := y.Unified(context.Background())
	if err != nil {
		slog.Error("Cannot build unified view", "error", err)
		os.Exit(1)
	}

	edit(rows)

	if err = y.SaveLocal(rows); err != nil {
		slog.Error("Cannot save dataset", "error", err)
		os.Exit(1)
	}
	slog.Info(msg, "species", len(rows))
}

func init() {
	rootCmd.AddCommand(markAllCmd)
	rootCmd.AddCommand(clearAllCmd)

	clearAllCmd.Flags().BoolP("notes", "n", false, "also wipe all notes")
}
