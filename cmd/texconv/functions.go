package main

import (
	"fmt"
	"slices"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"texconv/internal/format"
	"texconv/internal/token"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the function vocabulary in both notations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows := [][3]string{{"NAME", "PLAIN", "LATEX"}}
		nameWidth, plainWidth := 0, 0
		for _, name := range slices.Sorted(slices.Values(token.FunctionNames())) {
			fn := []token.Token{functionTemplate(name)}
			row := [3]string{name, format.PlainText(fn), format.Latex(fn)}
			rows = append(rows, row)
		}
		for _, row := range rows {
			nameWidth = max(nameWidth, runewidth.StringWidth(row[0]))
			plainWidth = max(plainWidth, runewidth.StringWidth(row[1]))
		}
		out := cmd.OutOrStdout()
		for _, row := range rows {
			fmt.Fprintf(out, "%s  %s  %s\n",
				runewidth.FillRight(row[0], nameWidth),
				runewidth.FillRight(row[1], plainWidth),
				row[2])
		}
		return nil
	},
}

// functionTemplate builds name applied to placeholder sub-equations.
func functionTemplate(name string) token.Token {
	info, _ := token.LookupFunction(name)
	var subs []token.SubEquation
	for _, role := range info.Slots {
		switch role {
		case token.RoleSubscript:
			subs = append(subs, token.Lower(token.NewVariable("sub")))
		case token.RoleSuperscript:
			subs = append(subs, token.Upper(token.NewVariable("sup")))
		}
	}
	subs = append(subs, token.Arg(token.NewVariable("x")))
	return token.NewFunction(name, subs...)
}
