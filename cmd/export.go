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

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes the unified view to a CSV file",
	Run: func(cmd *cobra.Command, _ []string) {
		y, st, _ := session(cmd)
		defer st.Close()

		out, _ := cmd.Flags().GetString("output")

		rows, _, err := y.Unified(context.Background())
		if err != nil {
			slog.Error("Cannot build unified view", "error", err)
			os.Exit(1)
		}

		if err = y.Export(out, rows); err != nil {
			slog.Error("Cannot export dataset", "error", err)
			os.Exit(1)
		}
		slog.Info("Exported dataset", "path", out, "species", len(rows))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "birds_export.csv",
		"path of the exported CSV file")
}
