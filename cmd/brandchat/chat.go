package main

import (
	"bufio"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/conversation"
	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/bowerhall/brandchat/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const chatHelp = `commands:
  /attach <path>...  stage files for the next message
  /pending           list staged files
  /export            print the transcript as YAML
  /quit              leave
anything else is sent as a message`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversation with staged file uploads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, _, err := newController()
		if err != nil {
			return err
		}
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s := &session{ctrl: ctrl, out: cmd.OutOrStdout()}
		fmt.Fprintln(s.out, chatHelp)

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if quit := s.handle(line); quit {
					return nil
				}
				if err := ctrl.Wait(ctx); err != nil {
					return nil
				}
				s.flush()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// session prints transcript entries as they arrive.
type session struct {
	ctrl    *conversation.Controller
	out     io.Writer
	printed int
}

// handle runs one input line and reports whether the user asked to quit.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)

	switch {
	case line == "/quit" || line == "/exit":
		return true

	case line == "/pending":
		s.printPending()

	case line == "/export":
		if err := render.YAML(s.out, s.ctrl.Snapshot(), time.Now()); err != nil {
			fmt.Fprintf(s.out, "export failed: %v\n", err)
		}

	case strings.HasPrefix(line, "/attach"):
		paths := strings.Fields(strings.TrimPrefix(line, "/attach"))
		if len(paths) == 0 {
			fmt.Fprintln(s.out, "usage: /attach <path>...")
			return false
		}
		files, err := readFiles(paths)
		if err != nil {
			fmt.Fprintf(s.out, "attach failed: %v\n", err)
			return false
		}
		s.ctrl.StageFiles(files...)
		s.printPending()

	case strings.HasPrefix(line, "/"):
		fmt.Fprintln(s.out, chatHelp)

	default:
		if _, err := s.ctrl.Send(line); err != nil {
			fmt.Fprintf(s.out, "send failed: %v\n", err)
			return false
		}
		s.flush()
	}

	return false
}

// flush renders messages appended since the previous flush.
func (s *session) flush() {
	msgs := s.ctrl.Snapshot()
	if s.printed >= len(msgs) {
		return
	}

	if err := render.Transcript(s.out, msgs[s.printed:], s.ctrl.Typing()); err != nil {
		logger.Warn("render transcript failed", "error", err)
		return
	}
	s.printed = len(msgs)
}

func (s *session) printPending() {
	pending := s.ctrl.Pending()
	if len(pending) == 0 {
		fmt.Fprintln(s.out, "no files staged")
		return
	}
	fmt.Fprintln(s.out, render.Pending(pending, humanSize))
}

func humanSize(f chat.FileHandle) string {
	return humanize.Bytes(uint64(f.Size))
}
