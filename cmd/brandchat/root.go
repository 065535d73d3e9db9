package main

import (
	"fmt"
	"os"

	"github.com/bowerhall/brandchat/internal/config"
	"github.com/bowerhall/brandchat/internal/conversation"
	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/bowerhall/brandchat/internal/upload"
	"github.com/spf13/cobra"
)

var (
	debug    bool
	endpoint string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "brandchat",
	Short: "Chat with the brand analyst and upload brand assets",
	Long: `brandchat drives a brand-analysis conversation from the terminal.

Files are staged with --file (or /attach in chat mode) and uploaded one at a
time to the upload service when the message is sent. Every upload outcome is
posted back into the transcript.

Quick Start:
  brandchat send "hello"
  brandchat send -f logo.png -f brief.pdf "check my brand"
  brandchat chat`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logger.SetDebug(true)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Upload endpoint (overrides BRANDCHAT_UPLOAD_URL)")
}

// newController wires configuration, the upload client and the controller.
func newController() (*conversation.Controller, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if endpoint != "" {
		cfg.Upload.Endpoint = endpoint
	}

	client := upload.NewClient(cfg.Upload.Endpoint,
		upload.WithTimeout(cfg.Upload.Timeout),
		upload.WithOrigin(cfg.Upload.Origin),
	)

	opts := append(conversation.FromConfig(cfg), conversation.WithHook(conversation.LogHook()))
	ctrl := conversation.New(client, opts...)

	logger.Debug("controller ready", "endpoint", cfg.Upload.Endpoint, "reply_delay", cfg.Chat.ReplyDelay)

	return ctrl, cfg, nil
}
