package cmd

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/config"
	"github.com/deploymenttheory/go-classicbox/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base CLI command
var rootCmd = &cobra.Command{
	Use:   "classicbox",
	Short: "A CLI tool for classic Mac OS file formats and disk images",
	Long: `classicbox inspects and produces the binary formats used by classic
Mac OS software: MacBinary containers, resource forks, and alias files.
It can also examine HFS Standard disk images through hfsutils and
extract the archives such software usually ships in.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// CLI flags can override config settings
		debug, _ := cmd.Flags().GetBool("debug")
		logFormat, _ := cmd.Flags().GetString("log-format")
		output, _ := cmd.Flags().GetString("output")

		if cmd.Flags().Changed("debug") {
			config.Instance.Debug = debug
		}
		if cmd.Flags().Changed("log-format") {
			config.Instance.LogFormat = logFormat
		}
		if cmd.Flags().Changed("output") {
			config.Instance.Output = output
		}

		// If config file was explicitly specified via flag, reinitialize
		if cmd.Flags().Changed("config") && cfgFile != "" {
			// Only log an error, don't exit, as the config may still be usable
			if err := config.Initialize(cfgFile); err != nil {
				logger.LogError("Error loading config file", err, map[string]interface{}{
					"config_file": cfgFile,
				})
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.LogError("Command execution failed", err, nil)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is search in standard locations)")
	rootCmd.PersistentFlags().Bool("debug", config.Instance.Debug, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", config.Instance.LogFormat, "Log format: json or human")
	rootCmd.PersistentFlags().StringP("output", "o", config.Instance.Output, "Output format: text, json, or plist")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows the application version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("go-classicbox v0.1.0")
	},
}
