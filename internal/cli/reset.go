package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pureline/invoicer/internal/crypto"
	"github.com/pureline/invoicer/internal/db"
	"github.com/pureline/invoicer/internal/repository"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data. By default deletes only the invoice collection.

Examples:
  invoicer reset invoices    # Delete every stored invoice
  invoicer reset all         # Delete invoices and the stored encryption key`,
}

var resetInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Delete every stored invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL invoices. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		kv := db.NewKV(appInstance.DB)
		if err := kv.Delete(context.Background(), repository.StorageKey); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		fmt.Println("All invoices have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete all invoices and forget the stored encryption key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL invoices and the saved encryption key. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		kv := db.NewKV(appInstance.DB)
		if err := kv.Delete(context.Background(), repository.StorageKey); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		keyring := crypto.NewKeyring()
		if err := keyring.DeleteKey(); err != nil {
			// The data is already gone; key removal is best effort
			fmt.Printf("Warning: could not remove the stored key: %v\n", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetInvoicesCmd)
	resetCmd.AddCommand(resetAllCmd)
}
