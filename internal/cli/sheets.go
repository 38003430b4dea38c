package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hctsai/roomcal/pkg/workbook"
)

// sheetsCommand creates the sheets command for listing workbook contents.
func (c *CLI) sheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [file.xlsx]",
		Short: "List the worksheets of a booking workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}

			names := workbook.SheetNames(wb)
			printInfo("%d worksheet(s) in %s", len(names), args[0])
			for _, name := range names {
				if year, month, ok := workbook.MonthFromSheet(name); ok {
					printKeyValue(name, fmt.Sprintf("%d/%02d", year, month))
				} else {
					printKeyValue(name, "(no month code)")
				}
			}
			return nil
		},
	}
}
