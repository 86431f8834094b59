package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ghosttype/internal/input"
	"ghosttype/internal/typing"
)

var (
	flagMode        string
	flagBaseDelay   time.Duration
	flagVariability time.Duration
	flagWordPause   time.Duration
	flagNatural     bool
	flagRepeats     int
	flagCountdown   int
	flagWatchdog    int
	flagDryRun      bool
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text into the focused window",
	Long: `Type text into whatever window has focus once the countdown elapses.
Reads the text from the argument, or from stdin when the argument is
"-" or absent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
	Example: `  ghosttype-cli type "hello world"
  cat notes.txt | ghosttype-cli type -
  ghosttype-cli type --mode word --repeats 3 --dry-run "lorem ipsum"`,
}

func init() {
	addTypingFlags(typeCmd)
	rootCmd.AddCommand(typeCmd)
}

// addTypingFlags registers the pacing flags shared by `type` and
// `snippets type`. Defaults mirror the desktop app's defaults.
func addTypingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagMode, "mode", "character", "Typing unit: character or word")
	cmd.Flags().DurationVar(&flagBaseDelay, "base-delay", 100*time.Millisecond, "Nominal pause after every unit")
	cmd.Flags().DurationVar(&flagVariability, "variability", 50*time.Millisecond, "Random jitter added to the base delay")
	cmd.Flags().DurationVar(&flagWordPause, "word-pause", 300*time.Millisecond, "Pause at word boundaries")
	cmd.Flags().BoolVar(&flagNatural, "natural", true, "Punctuation-aware pacing")
	cmd.Flags().IntVar(&flagRepeats, "repeats", 1, "How many times to replay the text")
	cmd.Flags().IntVar(&flagCountdown, "countdown", 3, "Seconds to wait before the first keystroke")
	cmd.Flags().IntVar(&flagWatchdog, "watchdog", 0, "Hard stop after this many seconds (0 disables)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Pace and count units without injecting keystrokes")
}

func runType(cmd *cobra.Command, args []string) error {
	text, err := readText(args)
	if err != nil {
		return err
	}
	return typeText(text)
}

// readText resolves the text argument: a literal, "-" for stdin, or
// stdin when no argument was given.
func readText(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// discardInjector paces and counts units without touching the keyboard.
type discardInjector struct{}

func (discardInjector) Char(rune) error                      { return nil }
func (discardInjector) Text(string) error                    { return nil }
func (discardInjector) Combo([]input.Modifier, string) error { return nil }

// typeText runs one typing job to completion, rendering progress on
// stderr. SIGINT/SIGTERM request the same cooperative stop as the
// desktop app's Stop button: the worker never cuts a unit in half.
func typeText(text string) error {
	mode, ok := typing.ParseMode(flagMode)
	if !ok {
		return fmt.Errorf("unknown typing mode %q (want character or word)", flagMode)
	}

	var injector input.Injector
	if flagDryRun {
		injector = discardInjector{}
	} else {
		var err error
		injector, err = input.New()
		if err != nil {
			return fmt.Errorf("keystroke injector: %w", err)
		}
	}

	req := typing.Request{
		Job: typing.Job{Text: text, Repeats: flagRepeats, Mode: mode},
		Policy: typing.TimingPolicy{
			BaseDelay:   flagBaseDelay,
			Variability: flagVariability,
			WordPause:   flagWordPause,
			Natural:     flagNatural,
		},
		Countdown: time.Duration(flagCountdown) * time.Second,
		Watchdog:  time.Duration(flagWatchdog) * time.Second,
	}

	bar := progressbar.NewOptions64(req.Job.TotalUnits(),
		progressbar.OptionSetDescription("typing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)

	engine := typing.New(injector, typing.Callbacks{
		OnCountdown: func(remaining int) {
			bar.Describe(fmt.Sprintf("starting in %d...", remaining))
		},
		OnState: func(s typing.State) {
			if s == typing.StateRunning {
				bar.Describe("typing")
			}
		},
		OnProgress: func(typed, _ int64) {
			_ = bar.Set64(typed)
		},
	})

	h, err := engine.Start(req)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			h.Stop()
		case <-h.Done():
		}
	}()

	<-h.Done()
	fmt.Fprintln(os.Stderr)

	switch h.State() {
	case typing.StateStopped:
		if h.Reason() == typing.ReasonWatchdog {
			fmt.Fprintln(os.Stderr, "stopped: watchdog limit reached")
		} else {
			fmt.Fprintln(os.Stderr, "stopped")
		}
	case typing.StateFailed:
		return h.Err()
	}
	return nil
}
