package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/contentmodel/internal/command"
	"github.com/dgallion1/contentmodel/internal/doctree"
	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
	"github.com/dgallion1/contentmodel/internal/parser"
	"github.com/dgallion1/contentmodel/internal/render"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmedit",
		Short:         "Import, edit and render rich-text content models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newImportCmd(),
		newApplyCmd(),
		newRenderCmd(),
		newOutlineCmd(),
		newCommandsCmd(),
	)
	return root
}

func newImportCmd() *cobra.Command {
	var noFallback bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Parse a document and print its content model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			doc, err := parser.Import(f, filepath.Base(path), parser.Options{FallbackPdftotext: !noFallback})
			if err != nil {
				return err
			}
			return writeModel(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&noFallback, "no-pdftotext", false, "do not fall back to pdftotext for PDFs")
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		argsText  string
		modelPath string
	)
	cmd := &cobra.Command{
		Use:   "apply NAME",
		Short: "Apply one command to a content model and print the result",
		Long: `Apply reads a content model (from --model or stdin), runs the named
command against its selection, normalizes the result and prints it.
Arguments are given with --args as JSON or YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := command.Lookup(args[0])
			if err != nil {
				return err
			}
			raw, err := argsJSON(argsText)
			if err != nil {
				return err
			}
			mutate, err := c.Bind(raw)
			if err != nil {
				return err
			}

			doc, err := readModel(cmd.InOrStdin(), modelPath)
			if err != nil {
				return err
			}
			if mutate(doc) {
				normalize.NormalizeContentModel(doc)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: no change\n", c.Name)
			}
			return writeModel(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVar(&argsText, "args", "", "command arguments as JSON or YAML")
	cmd.Flags().StringVar(&modelPath, "model", "", "model file (default stdin)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a content model as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readModel(cmd.InOrStdin(), modelPath)
			if err != nil {
				return err
			}
			if err := render.HTML(cmd.OutOrStdout(), doc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "model file (default stdin)")
	return cmd
}

func newOutlineCmd() *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the heading outline of a content model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readModel(cmd.InOrStdin(), modelPath)
			if err != nil {
				return err
			}
			tree := doctree.Build(doc)
			out := cmd.OutOrStdout()
			printSections(out, tree.Children, 0)
			fmt.Fprintf(out, "%d words\n", tree.Words)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "model file (default stdin)")
	return cmd
}

func printSections(w io.Writer, nodes []*doctree.DocNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%*sh%d %s (%d)\n", depth*2, "", n.Level, n.Title, n.Words)
		printSections(w, n.Children, depth+1)
	}
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the available edit commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range command.All() {
				fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Description)
			}
			return tw.Flush()
		},
	}
}

// argsJSON converts command arguments written as JSON or YAML to JSON.
func argsJSON(text string) (json.RawMessage, error) {
	if text == "" {
		return nil, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	return data, nil
}

func readModel(stdin io.Reader, path string) (*model.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return model.DecodeDocument(data)
}

func writeModel(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}
