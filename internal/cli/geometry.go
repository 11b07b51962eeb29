package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

// geometryCommand shows the CSS placement and pixel size of one item.
func (c *CLI) geometryCommand() *cobra.Command {
	var (
		it                    grid.Item
		cellWidth, cellHeight float64
	)

	cmd := &cobra.Command{
		Use:     "geometry",
		Short:   "Show the grid lines and pixel size of a single item",
		Example: `  tilegrid geometry --col 2 --row 1 --col-span 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cellWidth == 0 {
				cellWidth = c.Config.Grid.CellWidth
			}
			if cellWidth == 0 {
				cellWidth = grid.DefaultCellWidth
			}
			if cellHeight == 0 {
				cellHeight = c.Config.Grid.CellHeight
			}
			if cellHeight == 0 {
				cellHeight = grid.DefaultCellHeight
			}
			if err := tgerrors.ValidateCellSize(cellWidth, cellHeight); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := it.Placement()
			size := grid.PixelSize(it.ColSpan, it.RowSpan, cellWidth, cellHeight)
			printKeyValue(out, "grid-column", fmt.Sprintf("%d / %d", p.ColStart, p.ColEnd))
			printKeyValue(out, "grid-row", fmt.Sprintf("%d / %d", p.RowStart, p.RowEnd))
			printKeyValue(out, "size", fmt.Sprintf("%g × %g px", size.Width, size.Height))

			if errs := grid.ValidatePositionAll(it); len(errs) > 0 {
				printValidationErrors(out, errs)
				return reported(tgerrors.FromResult(grid.Result{Errors: errs}))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&it.Col, "col", 1, "starting column (1-based)")
	cmd.Flags().IntVar(&it.Row, "row", 1, "starting row (1-based)")
	cmd.Flags().IntVar(&it.ColSpan, "col-span", 1, "number of columns spanned")
	cmd.Flags().IntVar(&it.RowSpan, "row-span", 1, "number of rows spanned")
	cmd.Flags().Float64Var(&cellWidth, "cell-width", 0, "cell width in pixels (default 150)")
	cmd.Flags().Float64Var(&cellHeight, "cell-height", 0, "cell height in pixels (default 150)")
	return cmd
}
