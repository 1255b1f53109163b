// Package cmd implements the loko CLI commands using Cobra.
package cmd

import (
	"fmt"
	"strings"

	"github.com/madstone-tech/loko/internal/adapters/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
	appBuiltBy = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile     string
	ProjectRoot string
	Verbose     bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "loko",
	Short: "Narrative document compiler",
	Long: `loko compiles a main.md narrative document through a layout fixpoint,
resolving forward references such as page numbers and element counts once
layout converges.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: config.toml in LOKO_CONFIG_HOME or the XDG config directory)")
	rootCmd.PersistentFlags().StringVarP(&ProjectRoot, "project", "p", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable verbose output (env: LOKO_VERBOSE)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "scaffolding", Title: "Scaffolding"},
		&cobra.Group{ID: "compiling", Title: "Compiling"},
		&cobra.Group{ID: "introspection", Title: "Introspection"},
	)
}

// Execute runs the root command. This is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
// Call this from main.go before Execute().
func SetVersionInfo(version, commit, date, builtBy string) {
	appVersion = version
	appCommit = commit
	appDate = date
	appBuiltBy = builtBy

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("loko %s (commit: %s, built: %s by %s)\n", version, commit, date, builtBy),
	)
}

// initConfig sets up Viper configuration with the full hierarchy:
// CLI flags > LOKO_* env vars > project loko.toml > global XDG config.toml > defaults
func initConfig(root *cobra.Command) error {
	viper.SetConfigType("toml")

	viper.SetDefault("paths.source", ".")
	viper.SetDefault("paths.output", "./dist")
	viper.SetDefault("watch.hot_reload", true)
	viper.SetDefault("watch.debounce_ms", 500)
	viper.SetDefault("introspection.max_iterations", 5)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		paths := config.NewXDGPathResolver()
		viper.SetConfigFile(paths.ConfigFile())
		_ = viper.ReadInConfig() // Silent fail if not found.
	}

	viper.SetConfigFile("loko.toml")
	_ = viper.MergeInConfig() // Silent fail if not found.

	viper.SetEnvPrefix("LOKO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	applyCustomAliases(root)

	return nil
}

// applyCustomAliases reads the [aliases] section from config and appends
// custom aliases to matching top-level commands. Config values can be a
// single string or an array of strings. Invalid entries are silently skipped.
func applyCustomAliases(root *cobra.Command) {
	aliasMap := viper.GetStringMap("aliases")
	if len(aliasMap) == 0 {
		return
	}

	commands := root.Commands()
	cmdByName := make(map[string]*cobra.Command, len(commands))
	for _, cmd := range commands {
		cmdByName[cmd.Name()] = cmd
	}

	for name, value := range aliasMap {
		cmd, ok := cmdByName[name]
		if !ok {
			continue
		}

		var aliases []string
		switch v := value.(type) {
		case string:
			aliases = []string{v}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					aliases = append(aliases, s)
				}
			}
		default:
			continue
		}

		cmd.Aliases = append(cmd.Aliases, aliases...)
	}
}
