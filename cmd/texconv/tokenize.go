package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texconv/internal/diagfmt"
	"texconv/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [expr]",
	Short: "Print the token tree of an expression",
	Long:  `Tokenize shows the tree both serializers work from`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("surface", "latex", "input notation (latex|plain)")
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	surface, err := cmd.Flags().GetString("surface")
	if err != nil {
		return fmt.Errorf("failed to get surface flag: %w", err)
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	tokenFormat, ok := diagfmt.ParseTokenFormat(formatFlag)
	if !ok {
		return fmt.Errorf("unknown format: %s", formatFlag)
	}

	dir, err := surfaceDirection(surface)
	if err != nil {
		return err
	}

	opts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	input, name, err := readExpression(cmd, args)
	if err != nil {
		return err
	}

	res, tokErr := driver.Tokenize(cmd.Context(), driver.Request{
		Name:      name,
		Input:     input,
		Direction: dir,
		Config:    cfg.Convert,
	})
	if err := printDiagnostics(cmd.ErrOrStderr(), res, opts); err != nil {
		return err
	}
	if tokErr != nil {
		return fmt.Errorf("tokenization failed: %w", tokErr)
	}

	out := cmd.OutOrStdout()
	switch tokenFormat {
	case diagfmt.TokensJSON:
		return diagfmt.FormatTokensJSON(out, res.Tokens)
	case diagfmt.TokensMsgpack:
		return diagfmt.FormatTokensMsgpack(out, res.Tokens)
	default:
		return diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	}
}
