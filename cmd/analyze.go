package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kamal-hamza/emobridge/internal/adapters/classifier"
	"github.com/kamal-hamza/emobridge/internal/adapters/facedetect"
	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
	"github.com/kamal-hamza/emobridge/internal/core/services"
	"github.com/kamal-hamza/emobridge/pkg/appdir"
	"github.com/kamal-hamza/emobridge/pkg/config"
	"github.com/kamal-hamza/emobridge/pkg/log"
	"github.com/kamal-hamza/emobridge/pkg/ui"
)

// runAnalyze prints the detected emotion label. Every failure, including
// setup, ends in the fallback label.
func runAnalyze(ctx context.Context, opts *options, path string, stdout, stderr io.Writer) error {
	label := analyze(ctx, opts, path, stderr)
	_, err := fmt.Fprintln(stdout, label)
	return err
}

func analyze(ctx context.Context, opts *options, path string, stderr io.Writer) domain.Label {
	svc, err := newAnalyzeService(ctx, opts, stderr)
	if err != nil {
		log.Printf("error analysing image: %v", err)
		return domain.FallbackLabel
	}
	return svc.Analyze(ctx, path)
}

// newAnalyzeService loads configuration and wires the analysis pipeline
func newAnalyzeService(ctx context.Context, opts *options, stderr io.Writer) (*services.AnalyzeService, error) {
	dirs, err := appdir.New()
	if err != nil {
		return nil, err
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = dirs.ConfigPath
	}

	// Tokens may live in a .env next to the config or in the working directory
	for _, envFile := range []string{".env", filepath.Join(filepath.Dir(configPath), ".env")} {
		if err := config.LoadEnvFile(envFile); err != nil {
			log.Printf("%v", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if opts.backend != "" {
		cfg.SetBackend(opts.backend)
	}

	logFile := appdir.Resolve(cfg.LogFile, dirs.LogsPath)
	if logFile != "" {
		if err := dirs.EnsureLogs(); err != nil {
			log.Printf("%v", err)
		}
	}
	log.Setup(log.Options{
		Stderr:  stderr,
		File:    logFile,
		Verbose: opts.verbose || cfg.Verbose,
	})
	log.Debugf("config %s, backend %s", configPath, cfg.Backend)

	labels := domain.ParseLabels(cfg.Labels)
	if len(labels) == 0 {
		labels = domain.Vocabulary(cfg.Vocabulary)
	}

	factory, err := classifier.NewFactory(cfg.Backend, classifier.Options{
		Model:    cfg.ModelFor(cfg.Backend),
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Labels:   labels,
		Timeout:  cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	pre := services.NewPreprocessor(cfg.InputSize, cfg.Grayscale, faceDetector(cfg, dirs))

	return services.NewAnalyzeService(pre, factory, cfg.RequestTimeout), nil
}

// faceDetector loads the cascade when cropping is on. A cascade that
// cannot be loaded disables cropping instead of failing the analysis.
func faceDetector(cfg *config.Config, dirs *appdir.Dirs) ports.FaceDetector {
	if !cfg.FaceCrop {
		return nil
	}

	cascade := appdir.Resolve(cfg.FaceCascade, dirs.ModelsPath)
	if cascade == "" {
		cascade = dirs.GetModelPath("facefinder")
	}

	detector, err := facedetect.LoadPigo(cascade)
	if err != nil {
		log.Printf("%s", ui.FormatWarning(fmt.Sprintf("face detection disabled: %v", err)))
		return nil
	}
	return detector
}
