package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordchain/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check <previous> <candidate> [used...]",
		Short: "Validate a single link and print the result as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCheck,
	}

	RootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogging(cfg, true)

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	v := newValidator(cfg, src)

	used := append([]string{args[0]}, args[2:]...)
	res := v.ValidateLink(cmd.Context(), args[0], args[1], used)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
