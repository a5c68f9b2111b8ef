package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/RichardoC/support-chat/internal/version"
	"github.com/RichardoC/support-chat/internal/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const clearScreen = "\033[H\033[2J"

type options struct {
	url     string
	width   int
	height  int
	logFile string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}

	root := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the support assistant from a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.Flags().StringVar(&opts.url, "url", "http://localhost:8080/api/chat", "relay endpoint")
	root.Flags().IntVar(&opts.width, "width", 80, "panel width in columns")
	root.Flags().IntVar(&opts.height, "height", 20, "number of conversation lines shown")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write client logs to this file")

	var output string
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch output {
			case "json":
				s, err := info.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			case "short":
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
			default:
				fmt.Fprintln(cmd.OutOrStdout(), info.Text())
			}
			return nil
		},
	}
	versionCmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, short)")
	root.AddCommand(versionCmd)

	return root
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// run drives the panel: every input line is typed into the field and
// submitted with Enter.
func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	logger, err := newLogger(opts.logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Sync()

	store := widget.NewStore(widget.NewHTTPTransport(opts.url, nil), logger)
	view := widget.NewView(store.Conversation(), opts.width, opts.height, func(frame string) {
		drawPanel(out, frame, store.SendControl(), opts.width)
	})
	defer view.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		store.SetInput(scanner.Text())
		store.HandleKey(ctx, widget.KeyEvent{Key: "Enter"})
	}
	return scanner.Err()
}

func drawPanel(out io.Writer, frame string, ctl widget.Control, width int) {
	fmt.Fprint(out, clearScreen)
	fmt.Fprintln(out, frame)
	fmt.Fprintln(out, strings.Repeat("─", width))
	fmt.Fprintf(out, "[%s] > ", ctl.Label)
}
