package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/logger"
	"github.com/Faultbox/scenepack/internal/scene"
	"github.com/Faultbox/scenepack/pkg/manifest"
)

// manifestFileName is the descriptor's name at the package root.
const manifestFileName = "manifest.json"

// Options configures one export attempt.
type Options struct {
	Budget     Budget
	Classifier config.ClassifierConfig
	// Prompter resolves unsupported findings; nil aborts the attempt when
	// any are present.
	Prompter Prompter
}

// OptionsFromConfig derives Options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Budget:     BudgetFromConfig(cfg.Budget),
		Classifier: cfg.Classifier,
	}
}

// Summary describes a successful export.
type Summary struct {
	ArchivePath string
	Objects     int
	Meshes      int
	Textures    int
	Materials   int
	Lights      int
	Report      Report
}

// Run executes the full pipeline against the scene and writes the package
// archive to dest. The pipeline is synchronous and assumes exclusive access
// to the scene and destination for the duration of the attempt.
//
// Gate failures (budget, unsupported content, nothing renderable) abort
// before any file I/O. Afterwards, only disk and archival failures abort;
// per-resource failures degrade to absent fields. Every exit path removes
// the private working directory.
func Run(sc scene.Scene, dest string, opts Options) (*Summary, error) {
	scanner := NewScanner(opts.Classifier)
	controller := NewController(sc, scanner, opts.Budget, opts.Prompter)

	result, report, err := controller.Run()
	if err != nil {
		return nil, err
	}
	logger.Log.Info("scan complete",
		zap.String("scene", result.SceneName),
		zap.String("complexity", report.Line()),
		zap.String("breakdown", report.Breakdown()))

	if !result.HasRenderables() {
		return nil, ErrNoExportableContent
	}

	workDir, err := newWorkDir()
	if err != nil {
		return nil, err
	}
	// The working directory never survives the attempt, whatever happens
	// after this point.
	defer os.RemoveAll(workDir)

	writer := newAssetWriter(workDir, NewRegistry())

	m, err := assembleManifest(result, report, writer)
	if err != nil {
		return nil, err
	}

	data, err := m.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, manifestFileName), data, 0644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	if err := archiveDir(workDir, dest); err != nil {
		return nil, err
	}

	meshCount, textureCount := 0, 0
	for _, a := range m.Assets {
		switch a.Value.Type {
		case manifest.AssetMesh:
			meshCount++
		case manifest.AssetTexture:
			textureCount++
		}
	}

	summary := &Summary{
		ArchivePath: dest,
		Objects:     len(m.Objects),
		Meshes:      meshCount,
		Textures:    textureCount,
		Materials:   len(m.Materials),
		Lights:      len(m.Lights),
		Report:      report,
	}
	logger.Log.Info("export complete",
		zap.String("archive", summary.ArchivePath),
		zap.Int("objects", summary.Objects),
		zap.Int("meshes", summary.Meshes),
		zap.Int("textures", summary.Textures),
		zap.Int("lights", summary.Lights))

	return summary, nil
}
