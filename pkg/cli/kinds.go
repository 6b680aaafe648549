package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/builtin"
	"github.com/dmitrymomot/validation/pkg/constraint"
)

func kindsCmd() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "List the constraint kinds available in check files",
		Action: func(_ context.Context, cmd *cli.Command) error {
			engine, err := validation.New()
			if err != nil {
				return err
			}
			messages := constraint.NewTemplateInterpolator(builtin.Messages())

			tw := tabwriter.NewWriter(outWriter(cmd), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tDEFAULT MESSAGE")
			for _, kind := range engine.Registry().Kinds() {
				def, _ := engine.Registry().Definition(kind)
				msg := messages.Interpolate(def.DefaultMessage, constraint.MessageContext{
					Declaration: &constraint.Declaration{Kind: kind},
				})
				fmt.Fprintf(tw, "%s\t%s\n", kind, msg)
			}
			return tw.Flush()
		},
	}
}
