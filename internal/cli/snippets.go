package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghosttype/internal/snippets"
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "Manage the saved snippet library",
	Long:  `Manage the snippet library shared with the desktop app.`,
}

var snippetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snippets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := snippets.New()
		for _, name := range store.List() {
			fmt.Println(name)
		}
	},
}

var snippetsSaveCmd = &cobra.Command{
	Use:   "save NAME [text]",
	Short: "Save a snippet",
	Long: `Save a snippet under NAME. Reads the text from the argument, or from
stdin when the argument is "-" or absent.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args[1:])
		if err != nil {
			return err
		}
		if err := snippets.New().Save(args[0], text); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %q\n", args[0])
		return nil
	},
}

var snippetsRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := snippets.New().Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "deleted %q\n", args[0])
		return nil
	},
}

var snippetsTypeCmd = &cobra.Command{
	Use:   "type NAME",
	Short: "Type a saved snippet into the focused window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := snippets.New().Get(args[0])
		if err != nil {
			return err
		}
		return typeText(text)
	},
}

func init() {
	addTypingFlags(snippetsTypeCmd)
	snippetsCmd.AddCommand(snippetsListCmd, snippetsSaveCmd, snippetsRmCmd, snippetsTypeCmd)
	rootCmd.AddCommand(snippetsCmd)
}
