// Package cli holds the nkeinfinity command tree.
package cli

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nkeinfinity/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "nkeinfinity",
	Short: "NKE Infinity storefront and admin back-office",
	Long: `nkeinfinity serves the public catalogue site and the admin back-office
that manages products, catalogues, enquiries, contacts and the gallery
through the inventory API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genPasswordCmd)
	rootCmd.AddCommand(tokenInfoCmd)
	rootCmd.AddCommand(purgeSessionsCmd)
}

// logToFile tees the standard logger into path when it can be opened.
func logToFile(path string) io.Closer {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", path, err)
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f
}
