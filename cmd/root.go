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
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	yardlist "github.com/birdwatch/yardlist/pkg"
	"github.com/birdwatch/yardlist/pkg/config"
)

//go:embed yardlist.yaml
var configText string

var (
	opts []config.Option
)

type cfgData struct {
	CSVFile    string
	CacheDir   string
	UserID     string
	JobsNum    int
	WebTimeout int
	PgHost     string
	PgUser     string
	PgPass     string
	PgDB       string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yardlist",
	Short: "Tracks backyard bird species you have seen",
	Long: `yardlist keeps a life list of backyard bird species. A CSV file
provides the reference table of species; your own seen/date/notes
state is layered on top and can be synced to a PostgreSQL database
shared between machines.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			slog.Error("Cannot get flag", "error", err)
			os.Exit(1)
		}
		if version {
			fmt.Printf("\nversion: %s\nbuild: %s\n\n", yardlist.Version, yardlist.Build)
			os.Exit(0)
		}

		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLog, initConfig)

	rootCmd.PersistentFlags().StringP("csv", "c", "",
		"path to the reference dataset CSV file")
	rootCmd.PersistentFlags().StringP("user", "u", "",
		"user the overlay records belong to")
	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")
}

// initLog routes slog output through tint.
func initLog() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	var homeDir, cfgDir string
	configFile := "yardlist"

	// Find home directory.
	homeDir, err = os.UserHomeDir()
	if err != nil {
		slog.Error("Cannot find home dir", "error", err)
		os.Exit(1)
	}
	cfgDir = filepath.Join(homeDir, ".config")

	// Search config in home directory with name "yardlist" (without extension).
	viper.AddConfigPath(cfgDir)
	viper.SetConfigName(configFile)
	viper.AutomaticEnv()

	configPath := filepath.Join(cfgDir, fmt.Sprintf("%s.yaml", configFile))
	touchConfigFile(configPath)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Config file yardlist.yaml not found", "error", err)
		os.Exit(1)
	}
	getOpts()
}

// getOpts imports data from the configuration file. Some of the settings can
// be overriden by command line flags.
func getOpts() []config.Option {
	cfg := cfgData{}
	err := viper.Unmarshal(&cfg)
	if err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.CSVFile != "" {
		opts = append(opts, config.OptCSVFile(cfg.CSVFile))
	}
	if cfg.CacheDir != "" {
		opts = append(opts, config.OptCacheDir(cfg.CacheDir))
	}
	if cfg.UserID != "" {
		opts = append(opts, config.OptUserID(cfg.UserID))
	}
	if cfg.JobsNum != 0 {
		opts = append(opts, config.OptJobsNum(cfg.JobsNum))
	}
	if cfg.WebTimeout != 0 {
		opts = append(opts, config.OptWebTimeout(cfg.WebTimeout))
	}
	if cfg.PgHost != "" {
		opts = append(opts, config.OptPgHost(cfg.PgHost))
	}
	if cfg.PgUser != "" {
		opts = append(opts, config.OptPgUser(cfg.PgUser))
	}
	if cfg.PgPass != "" {
		opts = append(opts, config.OptPgPass(cfg.PgPass))
	}
	if cfg.PgDB != "" {
		opts = append(opts, config.OptPgDB(cfg.PgDB))
	}
	return opts
}

// flagOpts applies persistent flag overrides on top of the file
// options.
func flagOpts(cmd *cobra.Command) []config.Option {
	res := opts
	if csv, _ := cmd.Flags().GetString("csv"); csv != "" {
		res = append(res, config.OptCSVFile(csv))
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		res = append(res, config.OptUserID(user))
	}
	return res
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	fileExists, _ := gnsys.FileExists(configPath)
	if fileExists {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	createConfig(configPath)
}

// createConfig creates config file.
func createConfig(path string) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create config dir", "error", err)
		os.Exit(1)
	}

	err = os.WriteFile(path, []byte(configText), 0644)
	if err != nil {
		slog.Error("Cannot write to config file", "error", err)
		os.Exit(1)
	}
}
