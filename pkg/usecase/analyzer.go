package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
	"techlens/pkg/utils/async"
	"techlens/pkg/utils/imagex"
	"techlens/pkg/utils/lang"
	"techlens/pkg/utils/textscan"
)

//go:embed prompts/image_analysis.md
var imagePrompt string

//go:embed prompts/code_analysis_system.md
var codeSystemPrompt string

//go:embed prompts/code_analysis_user.md
var codeUserTemplate string

//go:embed prompts/combined_analysis_system.md
var combinedSystemPrompt string

//go:embed prompts/combined_analysis_user.md
var combinedUserTemplate string

const (
	// DefaultVisionModel is used for image and combined analyses
	DefaultVisionModel = "llama3-70b-8192-vision"

	// DefaultTextModel is used for code-only analyses
	DefaultTextModel = "llama3-70b-8192"

	imageMaxTokens = 1024
	textMaxTokens  = 2048
)

// genericRecommendation is the last-resort recommendation when neither the
// structured result nor the analysis text yields anything actionable
const genericRecommendation = "Review the full analysis for detailed recommendations"

type analyzer struct {
	llm      interfaces.LLMClient
	repo     interfaces.AnalysisRepository
	archiver interfaces.UploadArchiver
	notifier interfaces.Notifier

	visionModel string
	textModel   string
	maxTokens   int

	codeTmpl     *template.Template
	combinedTmpl *template.Template
}

// Option is a functional option for the analyzer
type Option func(*analyzer)

// WithArchiver enables raw upload archiving
func WithArchiver(archiver interfaces.UploadArchiver) Option {
	return func(a *analyzer) {
		a.archiver = archiver
	}
}

// WithNotifier enables failure notification
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(a *analyzer) {
		a.notifier = notifier
	}
}

// WithVisionModel overrides the vision model name
func WithVisionModel(name string) Option {
	return func(a *analyzer) {
		if name != "" {
			a.visionModel = name
		}
	}
}

// WithTextModel overrides the text model name
func WithTextModel(name string) Option {
	return func(a *analyzer) {
		if name != "" {
			a.textModel = name
		}
	}
}

// WithMaxTokens overrides the completion token budget for all analyses
func WithMaxTokens(n int) Option {
	return func(a *analyzer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// NewAnalyzer creates the analyzer use case
func NewAnalyzer(llm interfaces.LLMClient, repo interfaces.AnalysisRepository, opts ...Option) (interfaces.AnalyzerUseCase, error) {
	codeTmpl, err := template.New("code").Parse(codeUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse code prompt template")
	}
	combinedTmpl, err := template.New("combined").Parse(combinedUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse combined prompt template")
	}

	a := &analyzer{
		llm:          llm,
		repo:         repo,
		visionModel:  DefaultVisionModel,
		textModel:    DefaultTextModel,
		codeTmpl:     codeTmpl,
		combinedTmpl: combinedTmpl,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// AnalyzeImage analyzes a technical diagram or screenshot via the vision model
func (a *analyzer) AnalyzeImage(ctx context.Context, image *model.Upload) (*model.Analysis, error) {
	if err := validateUpload(image); err != nil {
		return nil, err
	}

	attachment := imagex.Preprocess(image.Data)

	text, err := a.llm.Complete(ctx, &interfaces.CompletionRequest{
		Prompt:    imagePrompt,
		Images:    []*model.ImageAttachment{attachment},
		Model:     a.visionModel,
		MaxTokens: a.tokens(imageMaxTokens),
	})
	if err != nil {
		a.notifyFailure(ctx, types.AnalysisTypeImage, err)
		return nil, goerr.Wrap(err, "image analysis failed")
	}

	result := &model.ImageResult{
		Description:      text,
		DetectedElements: textscan.Elements(text),
		PotentialIssues:  textscan.Issues(text),
	}

	return a.finish(ctx, types.AnalysisTypeImage, result, text, image)
}

// AnalyzeCode analyzes an uploaded code file via the text model
func (a *analyzer) AnalyzeCode(ctx context.Context, code *model.Upload) (*model.Analysis, error) {
	if err := validateUpload(code); err != nil {
		return nil, err
	}

	content := string(code.Data)
	language := lang.Detect(code.Name, content)
	outline := lang.Parse(content, language)
	findings := lang.Scan(content, language)

	prompt, err := a.renderTemplate(a.codeTmpl, map[string]string{
		"Language": language,
		"Code":     content,
		"Outline":  outline.String(),
	})
	if err != nil {
		return nil, err
	}

	text, err := a.llm.Complete(ctx, &interfaces.CompletionRequest{
		System:    codeSystemPrompt,
		Prompt:    prompt,
		Model:     a.textModel,
		MaxTokens: a.tokens(textMaxTokens),
	})
	if err != nil {
		a.notifyFailure(ctx, types.AnalysisTypeCode, err)
		return nil, goerr.Wrap(err, "code analysis failed", goerr.V("language", language))
	}

	result := &model.CodeResult{
		Language:     language,
		Summary:      textscan.Summary(text),
		Issues:       append(findingsToIssues(findings), scanIssues(text)...),
		Suggestions:  textscan.Suggestions(text),
		FullAnalysis: text,
	}

	return a.finish(ctx, types.AnalysisTypeCode, result, text, code)
}

// AnalyzeCombined analyzes an image and code file together via the vision model
func (a *analyzer) AnalyzeCombined(ctx context.Context, image, code *model.Upload, userContext string) (*model.Analysis, error) {
	if err := validateUpload(image); err != nil {
		return nil, err
	}
	if err := validateUpload(code); err != nil {
		return nil, err
	}

	// Image and code preparation are independent; run them concurrently
	var attachment *model.ImageAttachment
	var language string
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		attachment = imagex.Preprocess(image.Data)
		return egCtx.Err()
	})
	eg.Go(func() error {
		language = lang.Detect(code.Name, string(code.Data))
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "combined analysis cancelled")
	}

	prompt, err := a.renderTemplate(a.combinedTmpl, map[string]string{
		"Context":  userContext,
		"Language": language,
		"Code":     string(code.Data),
	})
	if err != nil {
		return nil, err
	}

	text, err := a.llm.Complete(ctx, &interfaces.CompletionRequest{
		System:    combinedSystemPrompt,
		Prompt:    prompt,
		Images:    []*model.ImageAttachment{attachment},
		Model:     a.visionModel,
		MaxTokens: a.tokens(textMaxTokens),
	})
	if err != nil {
		a.notifyFailure(ctx, types.AnalysisTypeCombined, err)
		return nil, goerr.Wrap(err, "combined analysis failed")
	}

	result := &model.CombinedResult{
		CombinedAnalysis: text,
		ImageElements:    textscan.Elements(text),
		CodeIssues:       scanIssues(text),
		Correlations:     textscan.Correlations(text),
		RootCauses:       textscan.RootCauses(text),
	}

	return a.finish(ctx, types.AnalysisTypeCombined, result, text, image, code)
}

// GetAnalysis returns a stored analysis
func (a *analyzer) GetAnalysis(ctx context.Context, id types.AnalysisID) (*model.Analysis, error) {
	return a.repo.Get(ctx, id)
}

// ListAnalyses returns recent analyses, newest first
func (a *analyzer) ListAnalyses(ctx context.Context, limit int) ([]*model.Analysis, error) {
	return a.repo.List(ctx, limit)
}

// finish assembles the envelope, persists it, and archives the raw uploads in
// the background
func (a *analyzer) finish(ctx context.Context, analysisType types.AnalysisType, result model.AnalysisResult, fullText string, uploads ...*model.Upload) (*model.Analysis, error) {
	analysis := &model.Analysis{
		ID:              types.AnalysisID(uuid.NewString()),
		Type:            analysisType,
		Result:          result,
		Recommendations: buildRecommendations(result, fullText),
		CreatedAt:       time.Now().UTC(),
	}

	if err := a.repo.Put(ctx, analysis); err != nil {
		return nil, goerr.Wrap(err, "failed to store analysis", goerr.V("analysis_id", analysis.ID))
	}

	ctxlog.From(ctx).Info("analysis completed",
		"analysis_id", analysis.ID,
		"type", analysisType,
		"recommendations", len(analysis.Recommendations),
	)

	if a.archiver != nil {
		for _, upload := range uploads {
			u := upload
			async.Dispatch(ctx, func(ctx context.Context) error {
				return a.archiver.Archive(ctx, analysis.ID, u)
			})
		}
	}

	return analysis, nil
}

// buildRecommendations combines structured recommendations with text-scan
// fallbacks, ending with a generic entry when nothing was found. Entries
// derived from scan placeholders are dropped.
func buildRecommendations(result model.AnalysisResult, fullText string) []string {
	var structured []string
	for _, rec := range result.Recommendations() {
		if strings.Contains(rec, textscan.NoIssuesFound) || rec == textscan.NoSuggestionsFound {
			continue
		}
		structured = append(structured, rec)
	}
	if len(structured) > 0 {
		return structured
	}
	recs := textscan.Suggestions(fullText)
	if len(recs) == 1 && recs[0] == textscan.NoSuggestionsFound {
		return []string{genericRecommendation}
	}
	return recs
}

func (a *analyzer) renderTemplate(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt template", goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}

func (a *analyzer) tokens(fallback int) int {
	if a.maxTokens > 0 {
		return a.maxTokens
	}
	return fallback
}

func (a *analyzer) notifyFailure(ctx context.Context, analysisType types.AnalysisType, failure error) {
	if a.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return a.notifier.NotifyFailure(ctx, analysisType, failure)
	})
}

func validateUpload(upload *model.Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return goerr.Wrap(types.ErrInvalidUpload, "empty upload")
	}
	return nil
}

func findingsToIssues(findings []lang.Finding) []model.CodeIssue {
	var issues []model.CodeIssue
	for _, f := range findings {
		issues = append(issues, model.CodeIssue{
			Description: f.Description,
			Details:     f.Kind,
		})
	}
	return issues
}

func scanIssues(text string) []model.CodeIssue {
	var issues []model.CodeIssue
	for _, issue := range textscan.CodeIssues(text) {
		issues = append(issues, model.CodeIssue{
			Description: issue.Description,
			Details:     issue.Details,
			Solution:    issue.Solution,
		})
	}
	return issues
}
