package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"nutrition-admin/config"
	"nutrition-admin/internal/services"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, config.LoadConfig).Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newRootCmd builds the CLI. load supplies the config so SERVICE_JWT_SECRET
// comes from the same environment the API reads.
func newRootCmd(out io.Writer, load func() (*config.Config, error)) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "token",
		Short: "Service token tool for the nutrition admin API",
		Long:  "Issues HS256 service tokens accepted by the admin API as Authorization: Bearer <token>.",
	}

	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a service token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := cmd.Flags().GetString("service")
			if err != nil {
				return err
			}
			ttl, err := cmd.Flags().GetDuration("ttl")
			if err != nil {
				return err
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			auth := services.NewAuthService(cfg)
			if !auth.ServiceTokensEnabled() {
				return fmt.Errorf("SERVICE_JWT_SECRET is not set")
			}

			token, err := auth.IssueServiceToken(service, ttl)
			if err != nil {
				return fmt.Errorf("issue token for %q: %w", service, err)
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}
	issueCmd.Flags().String("service", "", "Name of the calling service (token subject)")
	issueCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = issueCmd.MarkFlagRequired("service")

	rootCmd.AddCommand(issueCmd)
	return rootCmd
}
