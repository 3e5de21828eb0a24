// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
}

var createOrgCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an organization and become its admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("idempotency-key")
		if key == "" {
			key = uuid.NewString()
		}

		code, err := getClient().CreateOrganization(cmd.Context(), args[0], key)
		if err != nil {
			return fmt.Errorf("failed to create organization, retry with --idempotency-key %s: %w", key, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Organization created: %s (code: %s)\n", args[0], code)

		return nil
	},
}

var joinOrgCmd = &cobra.Command{
	Use:   "join [code]",
	Short: "Join an organization with its invite code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := getClient().JoinOrganization(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to join organization: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, u)
	},
}

var showOrgCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Show an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := getClient().Organization(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get organization: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, o)
	},
}

var membersOrgCmd = &cobra.Command{
	Use:   "members [code]",
	Short: "List the members of an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt64("page")
		size, _ := cmd.Flags().GetInt64("size")

		members, err := getClient().Members(cmd.Context(), args[0], page, size)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		return printOutput(cmd.OutOrStdout(), outputFormat, members)
	},
}

func init() {
	createOrgCmd.Flags().String("idempotency-key", "", "Key identifying this creation request, generated when empty")

	membersOrgCmd.Flags().Int64("page", 0, "Page number")
	membersOrgCmd.Flags().Int64("size", 0, "Page size")

	orgCmd.AddCommand(createOrgCmd)
	orgCmd.AddCommand(joinOrgCmd)
	orgCmd.AddCommand(showOrgCmd)
	orgCmd.AddCommand(membersOrgCmd)

	rootCmd.AddCommand(orgCmd)
}
