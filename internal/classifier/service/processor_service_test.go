package service

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"financial-news-classifier/internal/classifier/repository"
	"financial-news-classifier/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	analyzeFunc func(ctx context.Context, articleText string) entity.NewsAnalysis
	calls       int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, articleText string) entity.NewsAnalysis {
	m.calls++
	return m.analyzeFunc(ctx, articleText)
}

func (m *mockAnalyzer) Ping(ctx context.Context) error {
	return nil
}

func writeInputCSV(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	return path
}

func readOutputCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func newTestProcessor(t *testing.T, analyzer AnalyzerService, trackSentiment bool) *processorService {
	t.Helper()
	cfg := testConfig(trackSentiment, "numeric", 0.7)
	svc := NewProcessorService(cfg, testLogger(t), analyzer, repository.NewArticleRepository(), nil, nil, nil)
	processor := svc.(*processorService)
	processor.sleep = func(time.Duration) {}
	return processor
}

func TestProcessorService_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInputCSV(t, dir, [][]string{
		{"Headline", "Date", "Article"},
		{"Oil surges", "2024-01-02", "Crude oil prices surged on supply cuts"},
		{"Empty row", "2024-01-03", "   "},
		{"Banks rally", "2024-01-04", "Major banks reported strong earnings"},
	})
	outputPath := filepath.Join(dir, "output.csv")

	analyzer := &mockAnalyzer{
		analyzeFunc: func(ctx context.Context, articleText string) entity.NewsAnalysis {
			category := entity.CategoryOilAndGas
			if articleText == "Major banks reported strong earnings" {
				category = entity.CategoryBanking
			}
			return entity.NewsAnalysis{
				Category:        category,
				Sentiment:       entity.SentimentPositive,
				Success:         true,
				ConfidenceScore: 0.8,
			}
		},
	}

	processor := newTestProcessor(t, analyzer, true)
	stats, err := processor.ProcessFile(context.Background(), inputPath, outputPath)
	require.NoError(t, err)

	records := readOutputCSV(t, outputPath)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Headline", "Date", "Article", "Category", "Sentiment"}, records[0])
	assert.Equal(t, []string{"Oil surges", "2024-01-02", "Crude oil prices surged on supply cuts", "oil_and_gas", "positive"}, records[1])
	assert.Equal(t, []string{"Empty row", "2024-01-03", "   ", "UNKNOWN", "NEUTRAL"}, records[2])
	assert.Equal(t, []string{"Banks rally", "2024-01-04", "Major banks reported strong earnings", "banking", "positive"}, records[3])

	assert.Equal(t, 2, analyzer.calls, "blank article must not reach the analyzer")
	assert.Equal(t, 3, stats.TotalArticles)
	assert.Equal(t, 2, stats.Categorized)
	assert.Equal(t, 1, stats.Unknown)
	assert.Zero(t, stats.Errors)
}

func TestProcessorService_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInputCSV(t, dir, [][]string{
		{"Headline", "Date"},
		{"No article column", "2024-01-02"},
	})

	processor := newTestProcessor(t, &mockAnalyzer{}, true)
	_, err := processor.ProcessFile(context.Background(), inputPath, filepath.Join(dir, "output.csv"))
	require.ErrorIs(t, err, repository.ErrInvalidCSV)
}

func TestProcessorService_CacheReusesIdenticalArticles(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInputCSV(t, dir, [][]string{
		{"Headline", "Date", "Article"},
		{"First copy", "2024-01-02", "Gold prices steady ahead of the Fed decision"},
		{"Second copy", "2024-01-03", "Gold prices steady ahead of the Fed decision"},
	})
	outputPath := filepath.Join(dir, "output.csv")

	analyzer := &mockAnalyzer{
		analyzeFunc: func(ctx context.Context, articleText string) entity.NewsAnalysis {
			return entity.NewsAnalysis{
				Category:        entity.CategoryCommodities,
				Sentiment:       entity.SentimentNeutral,
				Success:         true,
				ConfidenceScore: 0.8,
			}
		},
	}

	processor := newTestProcessor(t, analyzer, true)
	_, err := processor.ProcessFile(context.Background(), inputPath, outputPath)
	require.NoError(t, err)

	assert.Equal(t, 1, analyzer.calls, "second identical article comes from the cache")

	records := readOutputCSV(t, outputPath)
	require.Len(t, records, 3)
	assert.Equal(t, "commodities", records[1][3])
	assert.Equal(t, "commodities", records[2][3])
}

func TestProcessorService_PanicBecomesErrorRow(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInputCSV(t, dir, [][]string{
		{"Headline", "Date", "Article"},
		{"Bad row", "2024-01-02", "this article makes the analyzer blow up"},
	})
	outputPath := filepath.Join(dir, "output.csv")

	analyzer := &mockAnalyzer{
		analyzeFunc: func(ctx context.Context, articleText string) entity.NewsAnalysis {
			panic("unexpected state")
		},
	}

	processor := newTestProcessor(t, analyzer, true)
	stats, err := processor.ProcessFile(context.Background(), inputPath, outputPath)
	require.NoError(t, err, "a per-row failure must not abort the batch")

	records := readOutputCSV(t, outputPath)
	require.Len(t, records, 2)
	assert.Equal(t, "ERROR", records[1][3])
	assert.Equal(t, "NEUTRAL", records[1][4])
	assert.Equal(t, 1, stats.Errors)
}
