// Package sheets appends place rows to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// valueInputOption stores values exactly as sent, no formula parsing.
const valueInputOption = "RAW"

// Credentials selects how the appender authenticates. The first non-empty
// source wins: JSON, then File, then ClientEmail+PrivateKey.
type Credentials struct {
	JSON        string
	File        string
	ClientEmail string
	PrivateKey  string
}

// Options configures an Appender.
type Options struct {
	SpreadsheetID string
	Credentials   Credentials
	// Endpoint overrides the API base URL and disables authentication.
	Endpoint string
}

// Appender implements ports.RowAppender with spreadsheets.values.append.
type Appender struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds a Sheets service client.
func New(ctx context.Context, opts Options) (*Appender, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}

	clientOpts, err := clientOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &Appender{svc: svc, spreadsheetID: opts.SpreadsheetID}, nil
}

func clientOptions(ctx context.Context, opts Options) ([]option.ClientOption, error) {
	if opts.Endpoint != "" {
		return []option.ClientOption{
			option.WithEndpoint(strings.TrimRight(opts.Endpoint, "/") + "/"),
			option.WithoutAuthentication(),
		}, nil
	}

	creds := opts.Credentials
	switch {
	case creds.JSON != "":
		c, err := google.CredentialsFromJSON(ctx, []byte(creds.JSON), sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: parse credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(c)}, nil
	case creds.File != "":
		return []option.ClientOption{
			option.WithCredentialsFile(creds.File),
			option.WithScopes(sheetsapi.SpreadsheetsScope),
		}, nil
	case creds.ClientEmail != "" && creds.PrivateKey != "":
		cfg := &jwt.Config{
			Email:      creds.ClientEmail,
			PrivateKey: []byte(UnescapePrivateKey(creds.PrivateKey)),
			Scopes:     []string{sheetsapi.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		return []option.ClientOption{option.WithTokenSource(cfg.TokenSource(ctx))}, nil
	default:
		// Application default credentials.
		c, err := google.FindDefaultCredentials(ctx, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: no credentials configured: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(c)}, nil
	}
}

// UnescapePrivateKey turns literal "\n" sequences, as found in private keys
// passed through environment variables, back into newlines.
func UnescapePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Append sends all records in a single values.append call.
func (a *Appender) Append(ctx context.Context, targetRange string, records []domain.PersistedRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([][]interface{}, len(records))
	for i, rec := range records {
		values[i] = rec.Values()
	}

	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, targetRange, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		metrics.PersistFailures.WithLabelValues("sheets").Inc()
		return fmt.Errorf("sheets append %s: %w", targetRange, err)
	}

	metrics.RowsAppended.WithLabelValues("sheets").Add(float64(len(records)))
	return nil
}

// Ping reads the spreadsheet metadata to confirm access.
func (a *Appender) Ping(ctx context.Context) error {
	_, err := a.svc.Spreadsheets.Get(a.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}
