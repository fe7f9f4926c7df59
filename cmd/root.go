package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/logger"
	"github.com/spigell/skillscout/internal/matching"
	"github.com/spigell/skillscout/internal/store"
)

const (
	app = "skillscout"

	defaultDataDirName = "." + app
)

type Config struct {
	Root    string                `mapstructure:"root"`
	DataDir string                `mapstructure:"data-dir"`
	Prefs   *matching.Preferences `mapstructure:"prefs"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillscout builds a skills profile from your local repositories and ranks job postings against it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("data-dir", "SKILLSCOUT_HOME"); err != nil {
		log.Fatalf("binding SKILLSCOUT_HOME environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional. A file that exists but does not parse is
	// not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// openStore resolves the data directory: env/config first, then a dot
// directory in the user home, then the current directory as a last resort.
func openStore(config *Config, l *zap.Logger) *store.FileStore {
	dir := viper.GetString("data-dir")
	if dir == "" && config != nil {
		dir = config.DataDir
	}
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, defaultDataDirName)
		} else {
			dir = defaultDataDirName
		}
	}

	return store.NewFileStore(dir, l)
}
