// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/canonical/squad-service/internal/types"
)

// printOutput writes v as JSON, YAML or a table
func printOutput(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case "table", "":
		return printTable(out, v)
	}

	return fmt.Errorf("unknown output format %q", format)
}

func printTable(out io.Writer, v any) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	switch t := v.(type) {
	case *types.User:
		fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tORGANIZATION")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Email, t.DisplayName, t.Role, t.OrganizationCode)
	case []*types.User:
		fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tONLINE")
		for _, u := range t {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", u.ID, u.Email, u.DisplayName, u.Role, u.Online)
		}
	case *types.Organization:
		fmt.Fprintln(w, "CODE\tNAME\tCREATED_BY\tMEMBERS")
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t.Code, t.Name, t.CreatedBy, len(t.Members))
	case *types.Session:
		fmt.Fprintln(w, "USER_ID\tROLE\tORGANIZATION\tTOKEN")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.UserID, t.Role, t.OrganizationCode, t.Token)
	default:
		fmt.Fprintf(w, "%v\n", v)
	}

	return w.Flush()
}
