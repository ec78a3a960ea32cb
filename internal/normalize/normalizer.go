package normalize

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

const bulkDelimiter = ","

// reviewColumns are the CSV headers accepted as the review text column, in priority order.
var reviewColumns = []string{"review", "text", "comment", "feedback"}

// NormalizeSingle builds a Review from a typed-in review, a product field and a tag list.
func NormalizeSingle(text, product string, aspects []string) (models.Review, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Review{}, apperrors.Validation("please enter a review to analyze")
	}

	product = strings.TrimSpace(product)
	if product == "" {
		product = models.DefaultSingleProduct
	}

	return models.Review{
		Text:    text,
		Product: product,
		Aspects: trimAspects(aspects),
	}, nil
}

// NormalizeBulk turns raw delimited file contents into one Review per non-blank line.
// Only the text before the first delimiter is kept.
func NormalizeBulk(contents string) ([]models.Review, error) {
	var reviews []models.Review

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		text := line
		if before, _, found := strings.Cut(line, bulkDelimiter); found {
			if t := strings.TrimSpace(before); t != "" {
				text = t
			}
		}

		reviews = append(reviews, models.Review{
			Text:    text,
			Product: models.DefaultBulkProduct,
			Aspects: []string{},
		})
	}

	if len(reviews) == 0 {
		return nil, apperrors.EmptyInput("no valid reviews found in file")
	}
	return reviews, nil
}

// NormalizeCSV reads a CSV with a header row and takes the review text from the first
// recognized column. An optional "product" column overrides the bulk product name.
func NormalizeCSV(r io.Reader, aspects []string) ([]models.Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.EmptyInput("csv file is empty")
	}
	if err != nil {
		return nil, apperrors.New(apperrors.KindValidation, "failed to read csv header", err)
	}

	textCol, productCol := findColumns(header)
	if textCol < 0 {
		return nil, apperrors.Validation("could not find review column in csv")
	}

	conditioned := trimAspects(aspects)
	var reviews []models.Review
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.New(apperrors.KindValidation, "failed to read csv row", err)
		}
		if textCol >= len(record) {
			continue
		}

		text := strings.TrimSpace(record[textCol])
		if text == "" {
			continue
		}

		product := models.DefaultBulkProduct
		if productCol >= 0 && productCol < len(record) {
			if p := strings.TrimSpace(record[productCol]); p != "" {
				product = p
			}
		}

		reviews = append(reviews, models.Review{
			Text:    text,
			Product: product,
			Aspects: conditioned,
		})
	}

	if len(reviews) == 0 {
		return nil, apperrors.EmptyInput("no valid reviews found in csv")
	}
	return reviews, nil
}

// LoadFile picks the header-aware CSV import when the first line names a review
// column, and the line based bulk import otherwise.
func LoadFile(path string, aspects []string) ([]models.Review, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read review file: %w", err)
	}
	contents := strings.ReplaceAll(string(raw), "\r\n", "\n")

	if hasReviewHeader(contents) {
		return NormalizeCSV(strings.NewReader(contents), aspects)
	}

	reviews, err := NormalizeBulk(contents)
	if err != nil {
		return nil, err
	}
	if conditioned := trimAspects(aspects); conditioned != nil {
		for i := range reviews {
			reviews[i].Aspects = conditioned
		}
	}
	return reviews, nil
}

func hasReviewHeader(contents string) bool {
	scanner := bufio.NewScanner(strings.NewReader(contents))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		textCol, _ := findColumns(strings.Split(line, bulkDelimiter))
		return textCol >= 0
	}
	return false
}

func findColumns(header []string) (textCol, productCol int) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	textCol, productCol = -1, -1
	for _, name := range reviewColumns {
		if i, ok := index[name]; ok {
			textCol = i
			break
		}
	}
	if i, ok := index["product"]; ok {
		productCol = i
	}
	return textCol, productCol
}

// trimAspects keeps order and duplicates; an empty result is nil so the review
// is analyzed without aspect conditioning.
func trimAspects(aspects []string) []string {
	var out []string
	for _, a := range aspects {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
