package cmd

import (
	"fmt"
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/cottand/narrow/frontend/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ReconcileCmd = &cobra.Command{
	Use:          "reconcile <assertion>... <type>",
	Short:        "Narrow a type by one or more assertions, eg `reconcile '!null' 'A|null'`",
	Long:         "Narrow a type by one or more assertions. Several assertions are ANDed, in order, unless --any is given.",
	RunE:         runReconcile,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
}

var ContainsCmd = &cobra.Command{
	Use:          "contains <type> <container type>",
	Short:        "Check whether every value of a type is also a value of another",
	RunE:         runContains,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var (
	reconcileFlags *commonFlags
	reconcileAny   *bool
	containsFlags  *commonFlags
)

func init() {
	reconcileFlags = withCommonFlags(ReconcileCmd)
	reconcileAny = ReconcileCmd.Flags().Bool("any", false, "narrow to where at least one assertion holds")
	containsFlags = withCommonFlags(ContainsCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	h, err := reconcileFlags.setup()
	if err != nil {
		return err
	}
	existing, err := parseType(args[len(args)-1])
	if err != nil {
		return err
	}

	var ps []assertion.Possibility
	for _, token := range args[:len(args)-1] {
		p, ok := assertion.ParsePossibility(token)
		if !ok {
			return errors.Errorf("unknown assertion '%s'", token)
		}
		ps = append(ps, p)
	}

	var narrowed types.Union
	if *reconcileAny {
		narrowed, err = assertion.ReconcileAny(ps, existing, h)
	} else {
		narrowed = existing
		for _, p := range ps {
			if narrowed, err = assertion.Reconcile(p, narrowed, h); err != nil {
				break
			}
		}
	}
	if err != nil {
		return describe(err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), narrowed.String())
	return err
}

func runContains(cmd *cobra.Command, args []string) error {
	h, err := containsFlags.setup()
	if err != nil {
		return err
	}
	contained, err := parseType(args[0])
	if err != nil {
		return err
	}
	container, err := parseType(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), types.IsContainedBy(contained, container, h))
	return err
}
