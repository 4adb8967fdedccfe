package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"gopkg.in/yaml.v3"
)

// RunsDir is the directory, relative to the output dir, holding run logs.
const RunsDir = "runs"

// RunConfig represents the configuration section of a run log
type RunConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	Deck      string `yaml:"deck"`
	Timestamp string `yaml:"timestamp"`
}

// RunSlide is one transcribed slide in a run log
type RunSlide struct {
	SlideNumber int    `yaml:"slidenumber"`
	SlideText   string `yaml:"slidetext"`
}

// RunIssue is one detected issue in a run log
type RunIssue struct {
	Slides      []int  `yaml:"slides,flow"`
	Description string `yaml:"description"`
	Suggestion  string `yaml:"suggestion"`
}

// RunLog represents the complete record of one check
type RunLog struct {
	Config      RunConfig  `yaml:"config"`
	TotalSlides int        `yaml:"totalslides"`
	IssueCount  int        `yaml:"issuecount"`
	Slides      []RunSlide `yaml:"slides"`
	Issues      []RunIssue `yaml:"issues"`
	Suggestions []string   `yaml:"suggestions"`
	Report      string     `yaml:"report,omitempty"`
}

// SaveRunYAML writes run to <dir>/runs/<deck>-<timestamp>.yaml and returns the path.
func SaveRunYAML(dir string, run *models.Run) (string, error) {
	runsDir := filepath.Join(dir, RunsDir)
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create runs directory: %w", err)
	}

	timestamp := run.CreatedAt.Format("2006-01-02_15-04-05")
	log := RunLog{
		Config: RunConfig{
			Provider:  run.Provider,
			Model:     run.Model,
			Deck:      run.DeckPath,
			Timestamp: timestamp,
		},
		TotalSlides: run.TotalSlides,
		IssueCount:  run.IssueCount(),
		Slides:      make([]RunSlide, 0, len(run.Transcripts)),
		Report:      run.ReportPath,
	}
	for _, t := range run.Transcripts {
		log.Slides = append(log.Slides, RunSlide{SlideNumber: t.SlideNumber, SlideText: t.SlideText})
	}
	if run.Result != nil {
		for _, issue := range run.Result.Issues {
			log.Issues = append(log.Issues, RunIssue{
				Slides:      issue.Slides,
				Description: issue.Description,
				Suggestion:  issue.Suggestion,
			})
		}
		log.Suggestions = run.Result.Suggestions
	}

	deck := strings.TrimSuffix(filepath.Base(run.DeckPath), filepath.Ext(run.DeckPath))
	filename := filepath.Join(runsDir, fmt.Sprintf("%s-%s.yaml", deck, timestamp))

	data, err := yaml.Marshal(&log)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

// LoadRunYAML reads a run log written by SaveRunYAML.
func LoadRunYAML(path string) (*RunLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var log RunLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &log, nil
}

// Result rebuilds the consistency result recorded in the log.
func (l *RunLog) Result() *models.ConsistencyResult {
	result := &models.ConsistencyResult{
		Issues:      make([]models.Issue, 0, len(l.Issues)),
		Suggestions: l.Suggestions,
	}
	for _, issue := range l.Issues {
		result.Issues = append(result.Issues, models.Issue{
			Slides:      issue.Slides,
			Description: issue.Description,
			Suggestion:  issue.Suggestion,
		})
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result
}
