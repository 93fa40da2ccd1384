// Package cli is the command tree of the mmtype binary.
package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/eiannone/keyboard"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mmtype/internal/bridge"
	"mmtype/internal/config"
	"mmtype/internal/keymap"
	"mmtype/pkg/ime"
)

const appName = "mmtype"

func prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := EnvFromContext(ctx)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if model := cmd.String("model"); model != "" {
		cfg.Model.Path = model
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	log, closeLog, err := cfg.Logging.Prepare()
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.Cfg, env.Log, env.closeLog = cfg, log, closeLog
	env.Log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("model", cfg.Model.Path))
	return ctx, nil
}

func teardown(ctx context.Context, _ *cli.Command) error {
	env := EnvFromContext(ctx)
	env.Log.Debug("Program ended")
	// stderr cannot always be synced; nothing useful to report then.
	_ = env.Log.Sync()
	if err := env.closeLog(); err != nil {
		return fmt.Errorf("close log destination: %w", err)
	}
	return nil
}

func reportError(ctx context.Context, _ *cli.Command, err error) {
	EnvFromContext(ctx).Log.Error("Program ended with error", zap.Error(err))
}

// NewApp builds the command tree. Run it with a context from ContextWithEnv.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "Burmese phonetic input from romanized keystrokes",
		HideHelpCommand: true,
		Before:          prepare,
		After:           teardown,
		ExitErrHandler:  reportError,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (INI)"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "load model data from `FILE` (.tsv or .db)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:  "type",
				Usage: "Interactive composition in the terminal; Enter or a stop key prints the sentence, Ctrl+C quits",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "bridge", Aliases: []string{"b"}, Usage: "also stream commit and preedit frames to `PATH` (file or named pipe)"},
				},
				Action: runType,
			},
			{
				Name:      "convert",
				Usage:     "Transliterates romanized text given as arguments or on standard input",
				ArgsUsage: "[TEXT...]",
				Action:    runConvert,
			},
			{
				Name:      "lookup",
				Usage:     "Looks up whole words, romanized or in Burmese",
				ArgsUsage: "WORD...",
				Action:    runLookup,
			},
			{
				Name:   "layouts",
				Usage:  "Lists the direct-entry layouts",
				Action: runLayouts,
			},
		},
	}
}

func openComposer(ctx context.Context) (*ime.Composer, error) {
	env := EnvFromContext(ctx)
	return ime.Open(env.Cfg, env.Log)
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	composer, err := openComposer(ctx)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	if cmd.Args().Len() > 0 {
		for _, arg := range cmd.Args().Slice() {
			fmt.Fprintln(out, composer.Convert(arg))
		}
		return nil
	}
	scanner := bufio.NewScanner(cmd.Root().Reader)
	for scanner.Scan() {
		fmt.Fprintln(out, composer.Convert(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func runLookup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("lookup: no words given")
	}
	composer, err := openComposer(ctx)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	for _, word := range cmd.Args().Slice() {
		id, roman := composer.Lookup(word)
		if id < 0 {
			fmt.Fprintf(out, "%s\tunknown\n", word)
			continue
		}
		text, _ := composer.Dictionary().Word(id)
		fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", word, text, roman, id)
	}
	return nil
}

func runLayouts(_ context.Context, cmd *cli.Command) error {
	for _, name := range keymap.AvailableLayouts() {
		fmt.Fprintln(cmd.Root().Writer, name)
	}
	return nil
}

func runType(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	composer, err := openComposer(ctx)
	if err != nil {
		return err
	}
	var sink *bridge.Client
	if path := cmd.String("bridge"); path != "" {
		if sink, err = bridge.Open(path); err != nil {
			return err
		}
		defer sink.Close()
	}

	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	out := cmd.Root().Writer
	for ctx.Err() == nil {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if keymap.IsQuit(key) {
			fmt.Fprint(out, "\r\n")
			return nil
		}
		ev, ok := keymap.FromTerminal(ch, key)
		if !ok {
			continue
		}
		snap := composer.HandleKey(ev)
		if !snap.Handled {
			env.Log.Debug("key not handled", zap.Stringer("kind", ev.Kind), zap.String("char", string(ev.Char)))
		}
		if snap.CommitRequested {
			text := composer.Enter()
			fmt.Fprintf(out, "%s%s\r\n", clearLine, text)
			if err := sink.Commit(text); err != nil {
				return err
			}
			continue
		}
		fmt.Fprint(out, clearLine+RenderLine(snap))
		if err := sink.Preedit(snap.Sentence[3]); err != nil {
			return err
		}
	}
	return nil
}
