// Package importer applies batches of tabular rows through the
// validated ledger entry points, one row at a time. A bad row is
// reported in its outcome and never aborts the rest of the batch.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizdash/m/domain"
	"bizdash/m/internal/ledger"
)

// Kind selects which ledger operation a batch maps to.
type Kind string

const (
	KindSales     Kind = "sales"     // product,quantity,selling_price,buying_price,customer_id
	KindInventory Kind = "inventory" // product,stock,last_updated
	KindCustomers Kind = "customers" // name,email,orders,is_active
)

// Outcome is the per-row result of a batch.
type Outcome struct {
	Line  int    `json:"line"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report summarizes one batch.
type Report struct {
	BatchID   string    `json:"batch_id"`
	Kind      Kind      `json:"kind"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Importer feeds rows into the ledger service.
type Importer struct {
	svc    *ledger.Service
	logger *zap.Logger
}

// New creates an Importer.
func New(svc *ledger.Service, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{svc: svc, logger: logger}
}

// ImportCSV reads a CSV stream with a header line and imports the
// remaining rows. Only a malformed stream or unknown kind is an error;
// row-level failures land in the report.
func (imp *Importer) ImportCSV(kind Kind, r io.Reader) (Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return imp.ImportRows(kind, nil)
		}
		return Report{}, fmt.Errorf("unable to read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("unable to read row: %w", err)
		}
		rows = append(rows, record)
	}
	return imp.ImportRows(kind, rows)
}

// ImportRows applies every row independently and returns one outcome
// per row, in input order.
func (imp *Importer) ImportRows(kind Kind, rows [][]string) (Report, error) {
	switch kind {
	case KindSales, KindInventory, KindCustomers:
	default:
		return Report{}, fmt.Errorf("unknown import kind %q", kind)
	}

	report := Report{
		BatchID:  uuid.NewString(),
		Kind:     kind,
		Outcomes: make([]Outcome, 0, len(rows)),
	}
	for i, row := range rows {
		outcome := Outcome{Line: i + 1, OK: true}
		if err := imp.applyRow(kind, row); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	imp.logger.Info("import batch finished",
		zap.String("batch_id", report.BatchID),
		zap.String("kind", string(kind)),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (imp *Importer) applyRow(kind Kind, row []string) error {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	switch kind {
	case KindSales:
		if len(row) < 5 {
			return fmt.Errorf("expected 5 fields, got %d", len(row))
		}
		quantity, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", row[1])
		}
		sellingPrice, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("invalid selling_price %q", row[2])
		}
		buyingPrice, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return fmt.Errorf("invalid buying_price %q", row[3])
		}
		customerID, err := strconv.ParseInt(row[4], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer_id %q", row[4])
		}
		_, err = imp.svc.RecordSale(row[0], quantity, sellingPrice, buyingPrice, customerID)
		return err
	case KindInventory:
		if len(row) < 2 {
			return fmt.Errorf("expected at least 2 fields, got %d", len(row))
		}
		stock, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid stock %q", row[1])
		}
		var lastUpdated time.Time
		if len(row) > 2 && row[2] != "" {
			lastUpdated, err = time.Parse(domain.TimeLayout, row[2])
			if err != nil {
				return fmt.Errorf("invalid last_updated %q", row[2])
			}
		}
		return imp.svc.SetStock(row[0], stock, lastUpdated)
	default: // KindCustomers
		if len(row) < 4 {
			return fmt.Errorf("expected 4 fields, got %d", len(row))
		}
		orders, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid orders %q", row[2])
		}
		isActive, err := strconv.ParseBool(row[3])
		if err != nil {
			return fmt.Errorf("invalid is_active %q", row[3])
		}
		_, err = imp.svc.AddCustomer(row[0], row[1], orders, isActive)
		return err
	}
}
