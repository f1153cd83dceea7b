package providers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/models"
)

const factbookTableSelector = "table.content-table"

// FetchFactbookCodes scrapes the World Factbook country data codes page.
func FetchFactbookCodes(ctx context.Context, src ReferenceSource, location string) ([]models.CountryCode, error) {
	body, err := openSource(ctx, src, constants.SourceFactbook, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseFactbookCodes(body)
}

// ParseFactbookCodes extracts (name, alpha-2) pairs from the first content
// table. The name is the first cell and the code the third; a cell holding
// "XX|YY" keeps XX and a "-" code drops the row.
func ParseFactbookCodes(r io.Reader) ([]models.CountryCode, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, newSourceError(constants.SourceFactbook, constants.ErrCodeDecodeFailed, err)
	}

	table := doc.Find(factbookTableSelector).First()
	if table.Length() == 0 {
		return nil, newSourceError(constants.SourceFactbook, constants.ErrCodeTableNotFound, errors.New(factbookTableSelector))
	}

	var codes []models.CountryCode
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			// header rows only carry th cells
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		code := strings.TrimSpace(strings.Split(cells.Eq(2).Text(), "|")[0])
		if name == "" || code == "" || code == "-" {
			return
		}
		codes = append(codes, models.CountryCode{Name: name, Alpha2: code})
	})

	if len(codes) == 0 {
		return nil, newSourceError(constants.SourceFactbook, constants.ErrCodeTableEmpty, nil)
	}
	return codes, nil
}
