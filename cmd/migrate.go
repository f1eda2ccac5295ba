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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/birdwatch/yardlist/internal/io/pgio"
	"github.com/birdwatch/yardlist/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates or upgrades the remote store schema",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := config.New(flagOpts(cmd)...)

		st, err := pgio.New(cfg)
		if err != nil {
			slog.Error("Cannot create remote store", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		if err = st.Migrate(); err != nil {
			slog.Error("Cannot migrate remote store", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
