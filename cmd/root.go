package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cooktime/calculator"
)

var (
	configPath string // ini 配置文件路径
	logLevel   string

	cfg calculator.Config
)

var rootCmd = &cobra.Command{
	Use:          "cooktime",
	Short:        "Estimate how long food takes to cook through in an oven",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)

		cfg, err = calculator.LoadConfig(configPath)
		if err != nil {
			log.WithError(err).Warn("配置文件读取错误，使用默认配置")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "conf/config.ini", "Path to the ini configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, estimateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
