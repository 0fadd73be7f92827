package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	importeropenapi "github.com/goliatone/go-formbuilder/pkg/importer/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

const usage = `Usage: formbuilder <command> [flags]

Commands:
  new       scaffold a form definition file
  validate  check a form definition for save-blocking problems
  preview   render a form definition as HTML
  fill      answer a form interactively in the terminal
  import    derive a form definition from an OpenAPI operation

Run "formbuilder <command> -h" for the flags of each command.
`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formbuilder: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	switch os.Args[1] {
	case "new":
		runErr = runNew(os.Args[2:])
	case "validate":
		runErr = runValidate(os.Args[2:])
	case "preview":
		runErr = runPreview(ctx, os.Args[2:])
	case "fill":
		runErr = runFill(ctx, os.Args[2:])
	case "import":
		runErr = runImport(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "formbuilder: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if runErr != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(runErr))
		os.Exit(1)
	}
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	name := fs.String("name", "Untitled Form", "form name")
	description := fs.String("description", "", "form description")
	output := fs.String("output", "", "output file, .yaml or .json (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	editor := builder.New()
	editor.SetDetails(*name, *description, schema.StatusInactive, schema.VisibilityPublic)
	return writeFormFile(*output, editor.Snapshot())
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	formPath := fs.String("form", "", "form definition file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := readFormFile(*formPath)
	if err != nil {
		return err
	}

	violations := builder.Load(form).Validate()
	if len(violations) == 0 {
		fmt.Println("ok")
		return nil
	}
	for _, v := range violations {
		fmt.Printf("%s: %s\n", v.Path, v.Message)
	}
	return fmt.Errorf("%d problem(s) found", len(violations))
}

func runPreview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	formPath := fs.String("form", "", "form definition file")
	output := fs.String("output", "", "output file (stdout if empty)")
	action := fs.String("action", "#", "form action attribute")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := readFormFile(*formPath)
	if err != nil {
		return err
	}
	// previews should work on drafts too
	form.Status = schema.StatusActive

	renderer, err := vanilla.New()
	if err != nil {
		return err
	}
	body, err := renderer.Render(ctx, form, render.Options{Action: *action})
	if err != nil {
		return err
	}
	return writeOutput(*output, body)
}

func runFill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	formPath := fs.String("form", "", "form definition file")
	output := fs.String("output", "", "output file (stdout if empty)")
	pretty := fs.Bool("pretty", false, "emit a text summary instead of JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := readFormFile(*formPath)
	if err != nil {
		return err
	}
	form.Status = schema.StatusActive

	format := tui.OutputFormatJSON
	if *pretty {
		format = tui.OutputFormatPrettyText
	}
	renderer := tui.New(tui.WithOutputFormat(format))

	body, err := renderer.Render(ctx, form, render.Options{})
	if err != nil {
		return err
	}
	return writeOutput(*output, body)
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	docPath := fs.String("doc", "", "OpenAPI document, YAML or JSON")
	operation := fs.String("operation", "", "operation ID to import (omit to list candidates)")
	output := fs.String("output", "", "output file, .yaml or .json (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *docPath == "" {
		return fmt.Errorf("missing -doc")
	}
	document, err := os.ReadFile(*docPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	importer := importeropenapi.New()

	if *operation == "" {
		ids, err := importer.Operations(ctx, document)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no importable operations in %s", *docPath)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	form, err := importer.Import(ctx, document, *operation)
	if err != nil {
		return err
	}
	return writeFormFile(*output, form)
}

func writeOutput(path string, body []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
