// Command wavefrontcat loads a Wavefront OBJ file (and, when one is named
// with --mtllib, an MTL material library), reports summary statistics, and can
// optionally re-emit the parsed object set as OBJ text or a debug dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var logger *zap.Logger

func init() {
	viper.SetConfigName("wavefrontcat")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("wavefrontcat")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine; flags and environment variables still work.
		} else {
			fmt.Fprintln(os.Stderr, "error loading configuration file:", err)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "wavefrontcat",
	Short: "Inspect and recompose Wavefront OBJ/MTL files",
	Long:  `wavefrontcat parses Wavefront OBJ geometry (and MTL material libraries) into an in-memory model, reports what it found, and can recompose that model back into OBJ text.`,
	RunE:  runCat,
}

func init() {
	rootCmd.Flags().StringP("mtllib", "m", "", "material library to parse and report alongside the OBJ file")
	rootCmd.Flags().BoolP("recompose", "r", false, "recompose the parsed object set back to OBJ text on stdout")
	rootCmd.Flags().Bool("debug", false, "recompose using the human-readable debug compositor instead of OBJ text")
	viper.BindPFlag("mtllib", rootCmd.Flags().Lookup("mtllib"))
	viper.BindPFlag("recompose", rootCmd.Flags().Lookup("recompose"))
	viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

// Execute runs the root command, exiting the process with status 1 on
// error, matching the logging/exit split the core library itself avoids.
func Execute() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("wavefrontcat failed", zap.Error(err))
		os.Exit(1)
	}
}
