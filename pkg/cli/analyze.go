package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"techlens/pkg/cli/config"
	"techlens/pkg/domain/model"
	"techlens/pkg/infra/groq"
	"techlens/pkg/infra/memory"
	"techlens/pkg/usecase"
)

func cmdAnalyze() *cli.Command {
	var (
		groqCfg     config.Groq
		imagePath   string
		codePath    string
		userContext string
	)

	flags := append(groqCfg.Flags(),
		&cli.StringFlag{
			Name:        "image",
			Aliases:     []string{"i"},
			Usage:       "Path to a diagram or screenshot to analyze",
			Destination: &imagePath,
		},
		&cli.StringFlag{
			Name:        "code",
			Aliases:     []string{"c"},
			Usage:       "Path to a code file to analyze",
			Destination: &codePath,
		},
		&cli.StringFlag{
			Name:        "context",
			Usage:       "Additional context for combined analysis",
			Destination: &userContext,
		},
	)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze an image and/or code file from the command line",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if imagePath == "" && codePath == "" {
				return goerr.New("at least one of --image or --code is required")
			}

			llmClient, err := groq.New(groqCfg.APIKey, groqCfg.BaseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to create model API client")
			}

			analyzerUC, err := usecase.NewAnalyzer(llmClient, memory.NewRepository(),
				usecase.WithVisionModel(groqCfg.VisionModel),
				usecase.WithTextModel(groqCfg.TextModel),
			)
			if err != nil {
				return err
			}

			var image, code *model.Upload
			if imagePath != "" {
				if image, err = readLocalUpload(imagePath); err != nil {
					return err
				}
			}
			if codePath != "" {
				if code, err = readLocalUpload(codePath); err != nil {
					return err
				}
			}

			var analysis *model.Analysis
			switch {
			case image != nil && code != nil:
				analysis, err = analyzerUC.AnalyzeCombined(ctx, image, code, userContext)
			case image != nil:
				analysis, err = analyzerUC.AnalyzeImage(ctx, image)
			default:
				analysis, err = analyzerUC.AnalyzeCode(ctx, code)
			}
			if err != nil {
				return err
			}

			printAnalysis(analysis)
			return nil
		},
	}
}

func readLocalUpload(path string) (*model.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}

	return &model.Upload{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

func printAnalysis(analysis *model.Analysis) {
	title := color.New(color.FgCyan, color.Bold)
	issueColor := color.New(color.FgYellow)
	recColor := color.New(color.FgGreen)

	title.Printf("Analysis %s (%s)\n\n", analysis.ID, analysis.Type)

	switch result := analysis.Result.(type) {
	case *model.ImageResult:
		title.Println("Description")
		color.White("  %s\n", result.Description)

		title.Println("Detected elements")
		for _, elem := range result.DetectedElements {
			color.White("  - %s", elem)
		}

		title.Println("\nPotential issues")
		for _, issue := range result.PotentialIssues {
			issueColor.Printf("  - %s\n", issue)
		}

	case *model.CodeResult:
		title.Printf("Language: %s\n\n", result.Language)
		title.Println("Summary")
		color.White("  %s\n", result.Summary)

		title.Println("Issues")
		for _, issue := range result.Issues {
			issueColor.Printf("  - %s\n", issue.Description)
			if issue.Details != "" {
				color.White("    %s", issue.Details)
			}
		}

	case *model.CombinedResult:
		title.Println("Combined analysis")
		color.White("  %s\n", result.CombinedAnalysis)

		title.Println("Correlations")
		for _, corr := range result.Correlations {
			color.White("  - %s", corr)
		}

		title.Println("\nRoot causes")
		for _, cause := range result.RootCauses {
			issueColor.Printf("  - %s\n", cause)
		}
	}

	title.Println("\nRecommendations")
	for _, rec := range analysis.Recommendations {
		recColor.Printf("  - %s\n", rec)
	}
}
