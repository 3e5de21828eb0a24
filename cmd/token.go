// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

// accessToken is what the token command prints
type accessToken struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	TokenType   string    `json:"token_type" yaml:"token_type"`
	Expiry      time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token using the client credentials flow",
	Long:  `Get an access token for service to service calls, the token URL is discovered from the issuer when not given`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, _ := cmd.Flags().GetString("client-id")
		clientSecret, _ := cmd.Flags().GetString("client-secret")
		tokenURL, _ := cmd.Flags().GetString("token-url")
		issuerURL, _ := cmd.Flags().GetString("issuer-url")
		scopes, _ := cmd.Flags().GetStringSlice("scopes")

		ctx := cmd.Context()

		tokenURL, err := discoverTokenURL(ctx, tokenURL, issuerURL)
		if err != nil {
			return err
		}

		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}

		if outputFormat == "table" {
			fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
			return nil
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, accessToken{
			AccessToken: token.AccessToken,
			TokenType:   token.Type(),
			Expiry:      token.Expiry,
		})
	},
}

func discoverTokenURL(ctx context.Context, tokenURL, issuerURL string) (string, error) {
	if tokenURL != "" {
		return tokenURL, nil
	}

	if issuerURL == "" {
		return "", fmt.Errorf("either --token-url or --issuer-url must be provided")
	}

	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return "", fmt.Errorf("failed to discover the issuer: %w", err)
	}

	return provider.Endpoint().TokenURL, nil
}

func init() {
	tokenCmd.Flags().String("client-id", "", "Client ID")
	tokenCmd.Flags().String("client-secret", "", "Client Secret")
	tokenCmd.Flags().String("token-url", "", "Token URL")
	tokenCmd.Flags().String("issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSlice("scopes", []string{}, "Scopes (comma-separated)")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")

	rootCmd.AddCommand(tokenCmd)
}
