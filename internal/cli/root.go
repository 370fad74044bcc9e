// Package cli implements the wordchain commands.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordchain/internal/config"
	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/lexicon"
	"github.com/robalobadob/wordchain/internal/words"
)

var (
	lexiconFile string
	parallel    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "wordchain",
	Short: "Word-chain puzzle server and tools",
	Long:  "Link a start word to a target word one related word at a time. Serves the game API, checks single links, and plays in the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return words.Init()
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&lexiconFile, "lexicon", "l", "", "YAML word list to use instead of the Datamuse API (offline mode)")
	RootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "Query relation kinds concurrently (default: $LEXICON_PARALLEL)")
}

// setupLogging applies LOG_LEVEL. Interactive commands log to a console writer on stderr.
func setupLogging(cfg *config.Config, console bool) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openSource returns the lexical source: a YAML file when --lexicon is set,
// otherwise the Datamuse API behind the TTL cache.
func openSource(cfg *config.Config) (lexicon.Source, error) {
	if lexiconFile != "" {
		raw, err := os.ReadFile(lexiconFile)
		if err != nil {
			return nil, fmt.Errorf("read lexicon: %w", err)
		}
		return lexicon.LoadStatic(raw)
	}
	dm := lexicon.NewDatamuse(cfg.LexiconBaseURL, cfg.LexiconTimeout)
	return lexicon.NewCache(dm, cfg.LexiconCacheTTL, nil), nil
}

func newValidator(cfg *config.Config, src lexicon.Source) *game.Validator {
	return game.NewValidator(src, game.Options{
		MaxResults:      cfg.LexiconMaxResults,
		Parallel:        parallel || cfg.LexiconParallel,
		RarityThreshold: &cfg.RarityThreshold,
	})
}
