package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

// columnsCommand prints how many columns fit a screen width.
func (c *CLI) columnsCommand() *cobra.Command {
	var cellWidth, gap float64

	cmd := &cobra.Command{
		Use:   "columns <width>",
		Short: "Print the number of grid columns that fit a screen width",
		Example: `  tilegrid columns 1920
  tilegrid columns 1280 --cell-width 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return tgerrors.New(tgerrors.ErrCodeInvalidInput, "width must be a number (got %q)", args[0])
			}
			if err := tgerrors.ValidateScreenWidth(width); err != nil {
				return err
			}
			if cellWidth == 0 {
				cellWidth = c.Config.Grid.CellWidth
			}
			if cellWidth == 0 {
				cellWidth = grid.DefaultCellWidth
			}
			if gap == 0 {
				gap = c.Config.Grid.Gap
			}

			n := grid.ColumnCount(width, cellWidth, gap)
			loggerFromContext(cmd.Context()).Debug("column count", "width", width, "cell_width", cellWidth, "columns", n)
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	cmd.Flags().Float64Var(&cellWidth, "cell-width", 0, "cell width in pixels (default 150)")
	cmd.Flags().Float64Var(&gap, "gap", 0, "gap between cells in pixels (default 10)")
	return cmd
}
