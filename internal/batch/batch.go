package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pemistahl/lingua-go"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/caching"
	"github.com/dtnitsch/mail-unquote/pkg/db"
	"github.com/dtnitsch/mail-unquote/pkg/dom"
	"github.com/dtnitsch/mail-unquote/pkg/mailbody"
	"github.com/dtnitsch/mail-unquote/pkg/storage"
	"github.com/dtnitsch/mail-unquote/pkg/unquote"
)

// Job is one message file to process.
type Job struct {
	Path string
}

// Result holds the outcome of one processed job.
type Result struct {
	Path      string
	OutPath   string
	HTMLRule  string
	TextRule  string
	Language  string
	Cached    bool
	Error     error
	ErrorType string
}

// Output is what gets written per message.
type Output struct {
	Source   string         `yaml:"source"`
	Language string         `yaml:"language,omitempty"`
	HTML     *models.Result `yaml:"html,omitempty"`
	Text     *models.Result `yaml:"text,omitempty"`
}

// pipeline bundles the shared, read-only collaborators the workers use.
type pipeline struct {
	store      *storage.Storage
	cache      *caching.Cache
	database   *db.DB
	detector   lingua.LanguageDetector
	policy     *bluemonday.Policy
	opts       models.Options
	outputDir  string
	deriveText bool
}

// detectorLanguages is the subset the pattern catalog covers.
var detectorLanguages = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Polish,
	lingua.Swedish, lingua.Danish, lingua.Finnish, lingua.Vietnamese,
	lingua.Chinese,
}

// run fans the message files out over a worker pool and collects results.
func run(logger *slog.Logger, paths []string, p *pipeline, workerCount int) []Result {
	logger.Info("Starting batch phase", "message_count", len(paths), "workers", workerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(w, logger, p, &wg, jobs, results)
	}

	for _, path := range paths {
		jobs <- Job{Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All batch workers finished")

	allResults := make([]Result, 0, len(paths))
	for result := range results {
		allResults = append(allResults, result)
	}
	return allResults
}

// worker processes jobs from the jobs channel and sends results to the
// results channel.
func worker(id int, logger *slog.Logger, p *pipeline, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("worker started job", "worker", id, "path", job.Path)
		results <- p.process(job)
	}
}

func (p *pipeline) process(job Job) Result {
	result := Result{
		Path:    job.Path,
		OutPath: p.outPath(job.Path),
	}

	raw, err := p.store.ReadFile(job.Path)
	if err != nil {
		result.Error = err
		result.ErrorType = "read_error"
		return result
	}

	key := caching.Key(raw)
	if p.cache != nil {
		if data, ok := p.cache.Get(key); ok {
			result.Cached = true
			if err := p.store.SaveFile(result.OutPath, data); err != nil {
				result.Error = err
				result.ErrorType = "save_error"
			}
			return result
		}
	}

	body := mailbody.ExtractRaw(job.Path, raw)
	htmlBody := body.HTML
	if htmlBody != "" {
		htmlBody = p.policy.Sanitize(htmlBody)
	}
	textBody := body.Text
	if textBody == "" && htmlBody != "" && p.deriveText {
		textBody = mailbody.DeriveText(htmlBody)
	}

	uq := unquote.New(htmlBody, textBody, p.opts)
	output := Output{Source: job.Path}
	if htmlBody != "" {
		res := uq.HTML()
		output.HTML = &res
		result.HTMLRule = res.Rule
	}
	if textBody != "" {
		res := uq.Text()
		output.Text = &res
		result.TextRule = res.Rule
	}
	output.Language = AuthoredLanguage(p.detector, output)
	result.Language = output.Language

	data, err := yaml.Marshal(output)
	if err != nil {
		result.Error = err
		result.ErrorType = "marshal_error"
		return result
	}
	if err := p.store.SaveFile(result.OutPath, data); err != nil {
		result.Error = err
		result.ErrorType = "save_error"
		return result
	}
	if p.cache != nil {
		_ = p.cache.Set(key, data)
	}

	if p.database != nil {
		if err := p.record(job.Path, key, output); err != nil {
			result.Error = err
			result.ErrorType = "stats_error"
		}
	}
	return result
}

// NewDetector builds the language detector used for authored-content stats.
// It only knows the languages the pattern catalog covers.
func NewDetector() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().FromLanguages(detectorLanguages...).Build()
}

// AuthoredLanguage guesses the language of the authored (unquoted) content
// of a processed message. The text representation is preferred; an HTML-only
// message is flattened first.
func AuthoredLanguage(detector lingua.LanguageDetector, output Output) string {
	var text string
	if output.Text != nil {
		text = output.Text.Content
	} else if output.HTML != nil {
		text = dom.Text(dom.ParseHTML(output.HTML.Content).Root)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return lang.String()
}

// record writes the detection outcome to the stats database.
func (p *pipeline) record(path, hash string, output Output) error {
	messageID, err := p.database.InsertMessage(path, hash, output.Language)
	if err != nil {
		return err
	}
	if output.HTML != nil {
		if err := p.database.InsertDetection(messageID, "html", output.HTML.Rule, output.HTML.Boundary.String(), output.HTML.Depth); err != nil {
			return err
		}
	}
	if output.Text != nil {
		if err := p.database.InsertDetection(messageID, "text", output.Text.Rule, output.Text.Boundary.String(), output.Text.Depth); err != nil {
			return err
		}
	}
	return nil
}

func (p *pipeline) outPath(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(p.outputDir, fmt.Sprintf("%s.yaml", base))
}
