package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordchain/internal/config"
	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/tui"
	"github.com/robalobadob/wordchain/internal/words"
)

func init() {
	cmd := &cobra.Command{
		Use:   "play [start target]",
		Short: "Play a puzzle in the terminal (random puzzle when no words are given)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <start> <target>, got %d", len(args))
			}
			return nil
		},
		RunE: runPlay,
	}

	RootCmd.AddCommand(cmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogging(cfg, false)
	// the alt screen owns the terminal; degraded lookups already show up as rejections
	log.Logger = log.Output(io.Discard)

	start, target := "", ""
	if len(args) == 2 {
		start, target = args[0], args[1]
	} else {
		p := words.RandomPuzzle()
		start, target = p.Start, p.Target
	}
	g, err := game.NewChecked(start, target, cfg.MaxLinks)
	if err != nil {
		return err
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	v := newValidator(cfg, src)

	hints, closeHints := openHints(cmd.Context(), cfg, v)
	defer closeHints()

	return tui.Run(cmd.Context(), g, v, hints)
}
