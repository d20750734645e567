package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/smallsh/core"
	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/vos"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smallsh",
	Short: "A small interactive shell",
	Long: `A small interactive shell with the exit, cd and status builtins,
simple input/output redirection and background jobs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if debug {
			core.Logger = log.New(cmd.ErrOrStderr(), "smallsh: ", log.LstdFlags|log.Lmicroseconds)
		}

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		events, err := openEventLog(configuration)
		if err != nil {
			return err
		}
		defer events.Close()

		shell, err := core.NewShell(configuration, vos.NewOSIO(), vos.OSEnv{}, events.Session())
		if err != nil {
			return err
		}
		defer shell.Close()

		return shell.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration directory, built-in defaults if empty")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log diagnostics to stderr")
}
