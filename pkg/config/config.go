package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// CSVFile is the path to the reference dataset CSV file.
	CSVFile string

	// CacheDir is a directory for key-value stores and temporary files.
	CacheDir string

	// PhotoKVDir is a directory for the photo-metadata key-value store.
	PhotoKVDir string

	// UserID scopes overlay records in the remote store to one user.
	UserID string

	// JobsNum is a number of concurrent goroutines.
	JobsNum int

	// WebTimeout bounds metadata fetches from photo pages.
	WebTimeout time.Duration

	// PgHost is a host name for PostgreSQL. An empty host disables the
	// remote store.
	PgHost string

	// PgUser is a user name for PostgreSQL.
	PgUser string

	// PgPass is a password for PostgreSQL.
	PgPass string

	// PgDB is a database name for PostgreSQL.
	PgDB string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptCSVFile sets the path of the reference dataset CSV file.
func OptCSVFile(p string) Option {
	return func(cfg *Config) {
		cfg.CSVFile = p
	}
}

// OptCacheDir sets a directory for key-value stores and temporary files.
func OptCacheDir(d string) Option {
	return func(cfg *Config) {
		cfg.CacheDir = d
		cfg.PhotoKVDir = filepath.Join(d, "photos")
	}
}

// OptUserID sets the user the overlay records belong to.
func OptUserID(u string) Option {
	return func(cfg *Config) {
		cfg.UserID = u
	}
}

// OptJobsNum sets parallelism number for concurrent goroutines.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		cfg.JobsNum = j
	}
}

// OptWebTimeout sets the timeout for metadata fetches, in seconds.
func OptWebTimeout(sec int) Option {
	return func(cfg *Config) {
		cfg.WebTimeout = time.Duration(sec) * time.Second
	}
}

// OptPgHost sets host name for PostgreSQL.
func OptPgHost(h string) Option {
	return func(cfg *Config) {
		cfg.PgHost = h
	}
}

// OptPgUser sets user for PostgreSQL.
func OptPgUser(u string) Option {
	return func(cfg *Config) {
		cfg.PgUser = u
	}
}

// OptPgPass sets password for PostgreSQL.
func OptPgPass(p string) Option {
	return func(cfg *Config) {
		cfg.PgPass = p
	}
}

// OptPgDB sets database name for PostgreSQL.
func OptPgDB(d string) Option {
	return func(cfg *Config) {
		cfg.PgDB = d
	}
}

func New(opts ...Option) Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "yardlist")

	res := Config{
		CSVFile:    "birds_db.csv",
		CacheDir:   cacheDir,
		PhotoKVDir: filepath.Join(cacheDir, "photos"),
		UserID:     "default",
		JobsNum:    4,
		WebTimeout: 10 * time.Second,
		PgUser:     "postgres",
		PgPass:     "postgres",
		PgDB:       "yardlist",
	}

	for _, opt := range opts {
		opt(&res)
	}

	return res
}
