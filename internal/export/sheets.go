package export

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"babycarebot/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetsRange = "Events!A1"

// SheetsService appends logged events to a Google spreadsheet so caregivers
// can share history outside the chat. Optional; nil receiver disables it.
type SheetsService struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        zerolog.Logger

	mu      sync.Mutex
	pending []*model.EventEntry
}

// NewSheetsService authorizes against the service-account credentials file.
// Returns nil (not an error) when either parameter is empty.
func NewSheetsService(ctx context.Context, credentialsPath, spreadsheetID string, logger zerolog.Logger) (*SheetsService, error) {
	if credentialsPath == "" || spreadsheetID == "" {
		return nil, nil
	}
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &SheetsService{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// Record buffers an entry for the next flush. Buffering keeps event logging
// fast; the spreadsheet is a mirror, not the source of truth.
func (s *SheetsService) Record(e *model.EventEntry) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, e)
	s.mu.Unlock()
}

// Flush appends all buffered entries in one call. Failed batches are
// re-buffered for the next attempt.
func (s *SheetsService) Flush(ctx context.Context, loc *time.Location) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()
	if len(batch) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(batch))
	for _, e := range batch {
		values = append(values, eventRowValues(e, loc))
	}
	vr := &sheets.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, sheetsRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		s.mu.Lock()
		s.pending = append(batch, s.pending...)
		s.mu.Unlock()
		return fmt.Errorf("append to sheet: %w", err)
	}
	s.logger.Debug().Int("rows", len(batch)).Msg("sheets: history mirrored")
	return nil
}

// Run flushes the buffer on the interval until the context ends.
func (s *SheetsService) Run(ctx context.Context, interval time.Duration, loc *time.Location) {
	if s == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx, loc); err != nil {
				s.logger.Error().Err(err).Msg("sheets: flush failed")
			}
		}
	}
}
