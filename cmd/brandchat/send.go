package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/render"
	"github.com/spf13/cobra"
)

var (
	sendFiles  []string
	sendFormat string
)

var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Send one message, wait for every reply and print the transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendFormat != "text" && sendFormat != "yaml" {
			return fmt.Errorf("unknown format %q (want text or yaml)", sendFormat)
		}

		files, err := readFiles(sendFiles)
		if err != nil {
			return err
		}

		ctrl, _, err := newController()
		if err != nil {
			return err
		}
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var text string
		if len(args) == 1 {
			text = args[0]
		}

		ctrl.StageFiles(files...)
		if _, err := ctrl.Send(text); err != nil {
			return fmt.Errorf("send: %w", err)
		}

		waitErr := ctrl.Wait(ctx)
		ctrl.Close()

		out := cmd.OutOrStdout()
		if sendFormat == "yaml" {
			if err := render.YAML(out, ctrl.Snapshot(), time.Now()); err != nil {
				return fmt.Errorf("export transcript: %w", err)
			}
		} else if err := render.Transcript(out, ctrl.Snapshot(), false); err != nil {
			return fmt.Errorf("render transcript: %w", err)
		}

		if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
			return fmt.Errorf("wait for replies: %w", waitErr)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringArrayVarP(&sendFiles, "file", "f", nil, "File to attach (repeatable)")
	sendCmd.Flags().StringVar(&sendFormat, "format", "text", "Output format (text, yaml)")
	rootCmd.AddCommand(sendCmd)
}

func readFiles(paths []string) ([]chat.FileHandle, error) {
	files := make([]chat.FileHandle, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := chat.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
