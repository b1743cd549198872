// Package cli flash 命令行.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alfonsoamt/Flash-Drum/logger"
)

// Execute 运行命令行
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug   bool
		logFile string
		logJSON bool
		cleanup func() error
	)
	cmd := &cobra.Command{
		Use:          "flash",
		Short:        "理想体系闪蒸罐计算 (等温 / 绝热 / 泡露点 / 相图)",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			cleanup, err = logger.Setup(logger.Config{Path: logFile, Debug: debug, JSON: logJSON})
			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "输出调试日志")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "日志文件 (JSON)")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "标准错误输出 JSON 日志")

	cmd.AddCommand(
		bubbleCmd(),
		dewCmd(),
		isothermalCmd(),
		adiabaticCmd(),
		runCmd(),
		diagramCmd(),
		serveCmd(),
	)
	return cmd
}
