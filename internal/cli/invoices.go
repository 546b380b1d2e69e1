package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/render"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, show, export, and delete invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.Invoices.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		currency := appInstance.Config.Invoice.CurrencySymbol

		// Print table header
		fmt.Printf("%-20s %-24s %-12s %-12s %14s\n", "Number", "Client", "Date", "Due Date", "Total")
		fmt.Println("-------------------------------------------------------------------------------------")

		for _, inv := range invoices {
			fmt.Printf("%-20s %-24s %-12s %-12s %14s\n",
				truncate(inv.InvoiceNumber, 20),
				truncate(inv.ClientName, 24),
				inv.Date,
				inv.DueDate,
				render.Money(currency, inv.Total()),
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [number]",
	Short: "Show the formatted document for an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := resolveInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(render.Document(inv, appInstance.Config.Invoice.CurrencySymbol))
		return nil
	},
}

var invoicesExportCmd = &cobra.Command{
	Use:   "export [number]",
	Short: "Export an invoice as a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := resolveInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		path, err := appInstance.Exporter.Export(inv, output)
		if err != nil {
			return fmt.Errorf("failed to export invoice: %w", err)
		}

		fmt.Printf("✓ Exported %s to %s\n", inv.InvoiceNumber, path)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [number]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := resolveInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete invoice %s?", inv.InvoiceNumber)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Invoices.Remove(ctx, inv.ID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Deleted invoice %s\n", inv.InvoiceNumber)
		return nil
	},
}

// resolveInvoice looks up an invoice by number, falling back to internal ID
func resolveInvoice(ctx context.Context, ref string) (*domain.Invoice, error) {
	invoices, err := appInstance.Invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	for _, inv := range invoices {
		if inv.InvoiceNumber == ref {
			return inv, nil
		}
	}
	for _, inv := range invoices {
		if inv.ID == ref {
			return inv, nil
		}
	}

	return nil, fmt.Errorf("invoice not found: %s", ref)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesExportCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)

	invoicesExportCmd.Flags().String("output", "", "Output file or directory (defaults to the configured export directory)")
	invoicesDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
