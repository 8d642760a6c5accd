package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/entity"
)

// ErrInvalidCSV indicates the input table is missing required columns or is
// otherwise unreadable. It is fatal for the whole batch run.
var ErrInvalidCSV = errors.New("invalid csv structure")

var requiredColumns = []string{"Headline", "Date", "Article"}

// ArticleRepository reads the input table and writes the augmented output table.
type ArticleRepository interface {
	Read(path string) ([]entity.NewsArticle, error)
	Write(path string, rows []dto.ClassifiedArticle, includeSentiment, includeConfidence bool) error
	WriteArticles(path string, articles []entity.NewsArticle) error
}

type articleRepository struct{}

// NewArticleRepository creates a CSV-backed ArticleRepository.
func NewArticleRepository() ArticleRepository {
	return &articleRepository{}
}

// Read loads all articles from the CSV file at path. The header must contain
// the Headline, Date and Article columns.
func (r *articleRepository) Read(path string) ([]entity.NewsArticle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidCSV)
	}

	columnIndex := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columnIndex[name] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columnIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %v", ErrInvalidCSV, missing)
	}

	articles := make([]entity.NewsArticle, 0, len(records)-1)
	for _, record := range records[1:] {
		articles = append(articles, entity.NewsArticle{
			Headline: record[columnIndex["Headline"]],
			Date:     record[columnIndex["Date"]],
			Article:  record[columnIndex["Article"]],
		})
	}

	return articles, nil
}

// Write saves the classified rows to the CSV file at path, preserving input
// row order and appending the classification columns.
func (r *articleRepository) Write(path string, rows []dto.ClassifiedArticle, includeSentiment, includeConfidence bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := append([]string{}, requiredColumns...)
	header = append(header, "Category")
	if includeSentiment {
		header = append(header, "Sentiment")
	}
	if includeConfidence {
		header = append(header, "Confidence")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Headline, row.Date, row.Article, row.Category}
		if includeSentiment {
			record = append(record, row.Sentiment)
		}
		if includeConfidence {
			record = append(record, strconv.FormatFloat(row.Confidence, 'f', 2, 64))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	return nil
}

// WriteArticles saves a plain input table, one row per article.
func (r *articleRepository) WriteArticles(path string, articles []entity.NewsArticle) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(requiredColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, article := range articles {
		if err := writer.Write([]string{article.Headline, article.Date, article.Article}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return nil
}
