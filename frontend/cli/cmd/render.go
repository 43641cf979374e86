package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
)

type RenderOptions struct {
	Output string
}

func addRenderOptions(cmd *cobra.Command, options *RenderOptions) {
	cmd.Flags().StringVarP(&options.Output, "output", "o", string(OutputFormatTable), `output format ("table" or "json")`)
}

// Renderer writes a display object to the user.
type Renderer interface {
	Render(resource any, options *RenderOptions) error
}

// TableModel is implemented by display types that render as a table.
type TableModel interface {
	TableHeader() []string
	TableRows() [][]string
}

type consoleRenderer struct {
	out io.Writer
}

func NewConsoleRenderer(out io.Writer) Renderer {
	return &consoleRenderer{out: out}
}

func (r *consoleRenderer) Render(resource any, options *RenderOptions) error {
	switch OutputFormat(options.Output) {
	case OutputFormatJSON:
		encoded, err := json.MarshalIndent(resource, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(encoded))
		return err

	case OutputFormatTable, "":
		if model, ok := resource.(TableModel); ok {
			table := tablewriter.NewWriter(r.out)
			table.SetHeader(model.TableHeader())
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.AppendBulk(model.TableRows())
			table.Render()
			return nil
		}
		_, err := fmt.Fprintln(r.out, resource)
		return err

	default:
		return fmt.Errorf("unknown output format %q", options.Output)
	}
}
