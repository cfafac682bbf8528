package repositories

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"regexp"

	"oliu-backend/internal/config"
	"oliu-backend/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var shareURLPattern = regexp.MustCompile(`spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetsRowStore implements RowStore on the shared Google Sheet. The sheet
// is shared mutable state with no transaction support: two concurrent
// submissions can compute the same first empty row and race, each cell write
// applying last-write-wins. That weakness is inherited from the sheet
// contract itself and is deliberately not papered over here; the volunteer
// workflow is one submission at a time.
type SheetsRowStore struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	headerRow     int
	anchorColumn  int
	rowWidth      int
	idHeader      string
}

// NewSheetsRowStore builds an authenticated store from the deployment
// config: a base64 service-account credential blob and the sheet share URL.
func NewSheetsRowStore(ctx context.Context, cfg *config.Config) (*SheetsRowStore, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.Sheet.CredentialsB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	m := shareURLPattern.FindStringSubmatch(cfg.Sheet.ShareURL)
	if m == nil {
		return nil, models.NewConfigurationError("share URL %q does not contain a spreadsheet id", cfg.Sheet.ShareURL)
	}

	return &SheetsRowStore{
		svc:           svc,
		spreadsheetID: m[1],
		worksheet:     cfg.Sheet.Worksheet,
		headerRow:     cfg.Sheet.HeaderRow,
		anchorColumn:  cfg.Sheet.AnchorColumn,
		rowWidth:      cfg.Sheet.RowWidth,
		idHeader:      cfg.Sheet.IDHeader,
	}, nil
}

func (s *SheetsRowStore) Append(ctx context.Context, row []string) (int, error) {
	// First empty row: one past the last value in the anchor column.
	anchor := columnName(s.anchorColumn)
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!%s:%s", s.worksheet, anchor, anchor)).
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read anchor column: %w", err)
	}
	target := len(resp.Values) + 1

	for i, value := range row {
		if value == "" {
			continue
		}
		if i >= s.rowWidth {
			log.Printf("[RowStore] cell write failed at row %d col %d: column out of range", target, i+1)
			continue
		}
		cell := fmt.Sprintf("%s!%s%d", s.worksheet, columnName(i+1), target)
		vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
		_, err := s.svc.Spreadsheets.Values.
			Update(s.spreadsheetID, cell, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		if err != nil {
			// One bad cell must not lose the whole order.
			log.Printf("[RowStore] cell write failed at row %d col %d: %v", target, i+1, err)
			continue
		}
	}

	// Read back the order number the sheet stored in column 1 (either its
	// numbering column or the value pre-computed by the caller).
	idCell := fmt.Sprintf("%s!A%d", s.worksheet, target)
	idResp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, idCell).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read back order number: %w", err)
	}
	raw := ""
	if len(idResp.Values) > 0 && len(idResp.Values[0]) > 0 {
		raw = fmt.Sprint(idResp.Values[0][0])
	}
	return parseAssignedID(raw, target)
}

func (s *SheetsRowStore) ReadAll(ctx context.Context) ([]models.StoredOrder, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.worksheet).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	grid := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}
	return decodeGrid(grid, s.headerRow), nil
}

func (s *SheetsRowStore) FindByID(ctx context.Context, id int) (models.StoredOrder, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(records, s.idHeader, id)
}

func (s *SheetsRowStore) Headers(ctx context.Context) ([]string, error) {
	rng := fmt.Sprintf("%s!%d:%d", s.worksheet, s.headerRow, s.headerRow)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	row := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		row[i] = fmt.Sprint(v)
	}
	return headerNames(row), nil
}

func (s *SheetsRowStore) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.
		Get(s.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	return err
}

// columnName converts a 1-based column index to its A1 letter form.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
