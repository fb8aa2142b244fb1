package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nkeinfinity/internal/forms"
	"nkeinfinity/internal/repos"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/session"
)

var issueGST string

var genPasswordCmd = &cobra.Command{
	Use:   "gen-password",
	Short: "Generate a dealer password, optionally issuing it for a GST number",
	RunE: func(cmd *cobra.Command, args []string) error {
		if issueGST == "" {
			pw, err := forms.GeneratePassword()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		}

		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		d := forms.NewGSTDraft()
		d.SetField("gstNumber", issueGST)
		out := d.Submit(cmd.Context(), services.NewContactService(repos.NewContactRepo(db), nil))
		if out.Failed() {
			if out.Err != "" {
				return errors.New(out.Err)
			}
			return fmt.Errorf("invalid GST number: %s", out.Errors["gstNumber"])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.Issued.GSTNumber, d.Issued.Password)
		return nil
	},
}

var tokenInfoCmd = &cobra.Command{
	Use:   "token-info <token>",
	Short: "Print the email and expiry carried by an ID token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := session.Expiry(args[0])
		if err != nil {
			return fmt.Errorf("decode token: %w", err)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "email:   %s\n", session.Email(args[0]))
		if exp.IsZero() {
			fmt.Fprintln(w, "expires: never")
			return nil
		}
		fmt.Fprintf(w, "expires: %s\n", exp.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "expired: %t\n", session.Expired(args[0], time.Now()))
		return nil
	},
}

var purgeSessionsCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete expired sessions from the SQL session store",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		n, err := repos.NewSessionRepo(db).PurgeExpired(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "purged %d sessions\n", n)
		return nil
	},
}

func init() {
	genPasswordCmd.Flags().StringVar(&issueGST, "gst", "", "GST number to issue the password for")
}
