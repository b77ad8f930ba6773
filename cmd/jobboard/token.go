package main

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenUsername string
	tokenAdmin    bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token",
	Long:  `Sign a bearer token with JWT_SECRET. Admin tokens may create, update and delete jobs.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "Username to embed in the token (required)")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant admin access")

	_ = tokenCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenUsername, tokenAdmin)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
