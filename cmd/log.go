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

const dateLayout = "2006-01-02"

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log SPECIES",
	Short: "Records a sighting of one species",
	Long: `log updates your observation state for one species and saves the
dataset file. Without flags the species is marked seen today; prior
notes and first-seen date are kept unless new ones are given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		y, st, _ := session(cmd)
		defer st.Close()

		rows, _, err := y.Unified(context.Background())
		if err != nil {
			slog.Error("Cannot build unified view", "error", err)
			os.Exit(1)
		}

		name := args[0]
		row := findRow(rows, name)
		if row == nil {
			slog.Error("Species is not in the dataset", "species", name)
			os.Exit(1)
		}

		unseen, _ := cmd.Flags().GetBool("unseen")
		date, _ := cmd.Flags().GetString("date")
		notes, _ := cmd.Flags().GetString("notes")

		if date != "" {
			if _, err = time.Parse(dateLayout, date); err != nil {
				slog.Error("Date must look like 2006-01-02", "date", date)
				os.Exit(1)
			}
		}

		seen := !unseen
		if seen && date == "" {
			date = row.FirstSeen
			if date == "" {
				date = time.Now().Format(dateLayout)
			}
		}
		if !cmd.Flags().Changed("notes") {
			notes = row.Notes
		}

		row.Apply(seen, date, notes)
		if err = y.SaveLocal(rows); err != nil {
			slog.Error("Cannot save dataset", "error", err)
			os.Exit(1)
		}
		slog.Info("Updated species",
			"species", row.Name, "seen", row.Seen != "", "date", row.FirstSeen)
	},
}

func findRow(rows []sighting.Row, name string) *sighting.Row {
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i]
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().BoolP("unseen", "U", false,
		"clear the seen flag and first-seen date")
	logCmd.Flags().StringP("date", "d", "", "first-seen date (2006-01-02)")
	logCmd.Flags().StringP("notes", "n", "", "notes on where/how you saw it")
}
