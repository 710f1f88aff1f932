package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/store"
)

// screensCommand creates the screens command for managing the screen store.
func (c *CLI) screensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "Manage the screen store",
	}

	cmd.AddCommand(c.screensPutCommand())
	cmd.AddCommand(c.screensListCommand())
	cmd.AddCommand(c.screensGetCommand())
	cmd.AddCommand(c.screensDeleteCommand())

	return cmd
}

// screensPutCommand creates the "screens put" subcommand.
func (c *CLI) screensPutCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "put [document.json]",
		Short: "Store a screen document",
		Long: `Store a screen document.

The document is validated before storing: malformed JSON or duplicate
entity ids are rejected. Without --id a fresh id is generated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if _, err := document.Parse(doc); err != nil {
				return fmt.Errorf("invalid document: %w", err)
			}

			st, err := c.newStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if id == "" {
				id, err = store.Save(ctx, st, doc)
			} else {
				err = st.Put(ctx, id, doc)
			}
			if err != nil {
				return err
			}
			printSuccess("Stored screen %s", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "screen id (default: generated)")
	return cmd
}

// screensListCommand creates the "screens list" subcommand.
func (c *CLI) screensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored screen ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No screens stored")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// screensGetCommand creates the "screens get" subcommand.
func (c *CLI) screensGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Print a stored screen document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore()
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(string(doc))
			return nil
		},
	}
}

// screensDeleteCommand creates the "screens delete" subcommand.
func (c *CLI) screensDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted screen %s", args[0])
			return nil
		},
	}
}
