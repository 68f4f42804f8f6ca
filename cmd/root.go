package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weftlabs/weft/pkg/config"
	"github.com/weftlabs/weft/pkg/headless"
	"github.com/weftlabs/weft/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Chat with a workflow",
	Long:  `Streams a workflow's chat replies to the console, the same decode pipeline the editor uses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := viper.GetString("prompt")
		if prompt == "" {
			return fmt.Errorf("--prompt is required")
		}

		runner, err := headless.NewRunner(viper.GetBool("continue"))
		if err != nil {
			return err
		}

		return runner.Run(context.Background(), prompt)
	},
	SilenceUsage: true,
}

func Execute() {
	defer logger.Close()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .weft/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("server", "s", "", "workflow server base URL")
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentFlags().StringP("workflow", "w", "", "workflow file exported by the editor")
	viper.BindPFlag("workflow.path", rootCmd.PersistentFlags().Lookup("workflow"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "prompt to send")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().Bool("continue", false, "continue from previous chat history instead of starting fresh")
	viper.BindPFlag("continue", rootCmd.PersistentFlags().Lookup("continue"))

	rootCmd.PersistentFlags().Bool("stream", true, "print reply text as it streams in")
	viper.BindPFlag("streaming", rootCmd.PersistentFlags().Lookup("stream"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}
