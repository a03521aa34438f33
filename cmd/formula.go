package cmd

import (
	"fmt"
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/cottand/narrow/frontend/clause"
	"github.com/cottand/narrow/util"
	"github.com/spf13/cobra"
	"slices"
	"strings"
)

var NegateCmd = &cobra.Command{
	Use:          "negate <formula>",
	Short:        "Negate a formula, eg `negate '($a:int || $b:!empty) && ($c:null)'`",
	RunE:         runFormula(clause.Negate),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var SimplifyCmd = &cobra.Command{
	Use:          "simplify <formula>",
	Short:        "Simplify a formula by unit resolution and subsumption",
	RunE:         runFormula(clause.Simplify),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var TruthsCmd = &cobra.Command{
	Use:          "truths <formula>",
	Short:        "List what a formula establishes about each path",
	RunE:         runTruths,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runFormula(transform func(clause.Formula) clause.Formula) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		f, err := clause.ParseFormula(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range transform(f) {
			if _, err := fmt.Fprintln(out, c.String()); err != nil {
				return err
			}
		}
		return nil
	}
}

func runTruths(cmd *cobra.Command, args []string) error {
	f, err := clause.ParseFormula(args[0])
	if err != nil {
		return err
	}
	for _, truth := range clause.Truths(clause.Simplify(f)) {
		groups := make([]string, len(truth.Groups))
		for i, group := range truth.Groups {
			tokens := util.MapIter(slices.Values(group), assertion.Possibility.String)
			groups[i] = strings.Join(slices.Collect(tokens), "|")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", truth.Path, strings.Join(groups, " & ")); err != nil {
			return err
		}
	}
	return nil
}
