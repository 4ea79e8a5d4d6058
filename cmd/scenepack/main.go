// Package main is the scenepack command line exporter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/export"
	"github.com/Faultbox/scenepack/internal/logger"
	"github.com/Faultbox/scenepack/internal/scene"
)

var (
	flagScene  = flag.String("scene", "", "Path to the scene file to export")
	flagOut    = flag.String("out", "", "Path of the package archive to write")
	flagPick   = flag.Bool("pick", false, "Choose the destination with a native save dialog")
	flagPolicy = flag.String("on-unsupported", "abort",
		"What to do with unsupported content: abort, delete, clean or ignore")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if *flagScene == "" {
		fmt.Fprintln(os.Stderr, "Usage: scenepack -scene <file.yaml> -out <file.zip> [-on-unsupported=abort|delete|clean|ignore]")
		os.Exit(1)
	}

	dest := *flagOut
	if dest == "" && *flagPick {
		dest, err = dialog.File().
			Title("Save scene package").
			Filter("Scene package", "zip").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "Save dialog error: %v\n", err)
			}
			os.Exit(1)
		}
	}
	if dest == "" {
		fmt.Fprintln(os.Stderr, "No destination: pass -out or -pick")
		os.Exit(1)
	}
	if !strings.HasSuffix(dest, ".zip") {
		dest += ".zip"
	}

	prompter, err := prompterFor(*flagPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.LoadFile(*flagScene)
	if err != nil {
		logger.Log.Error("failed to load scene", zap.String("path", *flagScene), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := export.OptionsFromConfig(cfg)
	opts.Prompter = prompter

	summary, err := export.Run(sc, dest, opts)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	fmt.Printf("Exported %s\n", summary.ArchivePath)
	fmt.Printf("  objects:   %d\n", summary.Objects)
	fmt.Printf("  meshes:    %d\n", summary.Meshes)
	fmt.Printf("  textures:  %d\n", summary.Textures)
	fmt.Printf("  materials: %d\n", summary.Materials)
	fmt.Printf("  lights:    %d\n", summary.Lights)
	fmt.Printf("  %s\n", summary.Report.Line())
}

// prompterFor maps the -on-unsupported policy to a remediation prompter.
// "abort" keeps the default behavior of refusing flagged scenes.
func prompterFor(policy string) (export.Prompter, error) {
	switch policy {
	case "abort":
		return nil, nil
	case "delete":
		return export.PrompterFunc(func([]export.Finding) export.Action {
			return export.ActionDeleteAll
		}), nil
	case "clean":
		return export.PrompterFunc(func([]export.Finding) export.Action {
			return export.ActionCleanAll
		}), nil
	case "ignore":
		return export.PrompterFunc(func([]export.Finding) export.Action {
			return export.ActionIgnoreAll
		}), nil
	default:
		return nil, fmt.Errorf("unknown -on-unsupported policy %q", policy)
	}
}

// reportFailure prints a structured refusal to stderr.
func reportFailure(err error) {
	var over *export.BudgetExceededError
	if errors.As(err, &over) {
		fmt.Fprintln(os.Stderr, "Export refused: scene exceeds the complexity budget")
		fmt.Fprintf(os.Stderr, "  %s\n", over.Report.Line())
		fmt.Fprintf(os.Stderr, "  %s\n", over.Report.Breakdown())
		return
	}

	var unsupported *export.UnsupportedContentError
	if errors.As(err, &unsupported) {
		fmt.Fprintf(os.Stderr, "Export refused: %s\n", unsupported.Error())
		for _, f := range unsupported.Findings {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Object.Name(), strings.Join(f.Categories, ", "))
		}
		return
	}

	if errors.Is(err, export.ErrNoExportableContent) {
		fmt.Fprintln(os.Stderr, "Export refused: the scene has nothing renderable to export")
		return
	}

	fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
}
