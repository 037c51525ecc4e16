// Command csgo-sharecode converts CS:GO match share codes to the ids the
// Game Coordinator understands and back.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gckit/go-csgo/csgo/sharecode"
)

var rootCmd = &cobra.Command{
	Use:           "csgo-sharecode",
	Short:         "Decode and encode CS:GO match share codes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Decode a share code into match id, outcome id and token",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <match-id> <outcome-id> <token>",
	Short: "Encode match id, outcome id and token into a share code",
	Args:  cobra.ExactArgs(3),
	RunE:  runEncode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%s", err)
		os.Exit(1)
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	code, err := sharecode.Decode(args[0])
	if err != nil {
		return err
	}
	printResult("match id:   %d", code.MatchId)
	printResult("outcome id: %d", code.OutcomeId)
	printResult("token:      %d", code.Token)
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	matchId, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}
	outcomeId, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid outcome id %q: %w", args[1], err)
	}
	token, err := strconv.ParseUint(args[2], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid token %q: %w", args[2], err)
	}

	printResult("%s", sharecode.Encode(sharecode.ShareCode{
		MatchId:   matchId,
		OutcomeId: outcomeId,
		Token:     uint32(token),
	}))
	return nil
}
