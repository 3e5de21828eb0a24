// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")

		u, err := getClient().Register(cmd.Context(), email, password, name)
		if err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, u)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		s, err := getClient().SignIn(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("failed to sign in: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, s)
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "password-reset",
	Short: "Send a password reset mail",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		if err := getClient().SendPasswordReset(cmd.Context(), email); err != nil {
			return fmt.Errorf("failed to request a password reset: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password reset requested for %s\n", email)

		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := getClient().Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get the current user: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, u)
	},
}

func init() {
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password")
	registerCmd.Flags().String("name", "", "Display name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	passwordResetCmd.Flags().String("email", "", "Email address")
	_ = passwordResetCmd.MarkFlagRequired("email")

	accountCmd.AddCommand(registerCmd)
	accountCmd.AddCommand(loginCmd)
	accountCmd.AddCommand(passwordResetCmd)
	accountCmd.AddCommand(meCmd)

	rootCmd.AddCommand(accountCmd)
}
