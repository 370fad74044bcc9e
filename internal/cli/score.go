package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordchain/internal/game"
)

var (
	scoreHubs  int
	scoreStars int
)

func init() {
	cmd := &cobra.Command{
		Use:   "score <chain-length>",
		Short: "Compute the golf score of a finished chain",
		Args:  cobra.ExactArgs(1),
		RunE:  runScore,
	}
	cmd.Flags().IntVar(&scoreHubs, "hubs", 0, "Hub-word penalties in the chain")
	cmd.Flags().IntVar(&scoreStars, "stars", 0, "Total creativity stars in the chain")

	RootCmd.AddCommand(cmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 0 {
		return fmt.Errorf("chain length must be a non-negative integer, got %q", args[0])
	}
	if scoreHubs < 0 || scoreStars < 0 {
		return fmt.Errorf("--hubs and --stars must be non-negative")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(game.ScoreChain(steps, scoreHubs, scoreStars))
}
