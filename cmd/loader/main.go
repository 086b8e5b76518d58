// Command loader performs the one-time ETL from the Olist CSV files into
// MySQL: one table per CSV, column types inferred from a bounded sample.
// The agent itself never writes to the store; run this once before chatting.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgmysql "github.com/olist-agent-poc/server/pkg/mysql"
)

const (
	typeSampleRows  = 1000
	insertBatchSize = 500
)

type LoaderConfig struct {
	MySQL pkgmysql.Config
}

func main() {
	dataDir := flag.String("data", "./data", "directory containing the Olist CSV files")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg LoaderConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	db, err := cfg.MySQL.New()
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	files, err := filepath.Glob(filepath.Join(*dataDir, "*.csv"))
	if err != nil {
		log.Fatalf("Failed to list CSV files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No CSV files found in %q", *dataDir)
	}

	log.Printf("Found %d CSV files, starting data load", len(files))
	for _, file := range files {
		table := strings.TrimSuffix(filepath.Base(file), ".csv")
		n, err := loadFile(db, file, table)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", file, err)
		}
		log.Printf("Loaded %d rows into %s", n, table)
	}
	log.Printf("Data loading complete")
}

func loadFile(db *sqlx.DB, path, table string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.Trim(strings.TrimSpace(h), `"`)
	}

	rows := [][]string{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, record)
	}

	types := inferColumnTypes(rows, len(columns))
	if err := createTable(db, table, columns, types); err != nil {
		return 0, err
	}
	if err := insertRows(db, table, columns, types, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// inferColumnTypes samples rows and picks the narrowest SQL type that fits
// every non-empty value: BIGINT, then DOUBLE, then TEXT.
func inferColumnTypes(rows [][]string, columnCount int) []string {
	types := make([]string, columnCount)
	for col := 0; col < columnCount; col++ {
		isInt, isFloat, seen := true, true, false
		for i, row := range rows {
			if i >= typeSampleRows {
				break
			}
			if col >= len(row) || row[col] == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(row[col], 10, 64); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(row[col], 64); err != nil {
				isFloat = false
			}
			if !isInt && !isFloat {
				break
			}
		}
		switch {
		case seen && isInt:
			types[col] = "BIGINT"
		case seen && isFloat:
			types[col] = "DOUBLE"
		default:
			types[col] = "TEXT"
		}
	}
	return types
}

func createTable(db *sqlx.DB, table string, columns, types []string) error {
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)); err != nil {
		return err
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("`%s` %s", col, types[i])
	}
	ddl := fmt.Sprintf("CREATE TABLE `%s` (%s)", table, strings.Join(defs, ", "))
	_, err := db.Exec(ddl)
	return err
}

func insertRows(db *sqlx.DB, table string, columns, types []string, rows [][]string) error {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("`%s`", col)
	}
	prefix := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES ", table, strings.Join(quoted, ", "))
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*len(columns))
		for i, row := range batch {
			placeholders[i] = rowPlaceholder
			for col := range columns {
				args = append(args, cellValue(row, col, types[col]))
			}
		}

		if _, err := db.Exec(prefix+strings.Join(placeholders, ", "), args...); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps empty numeric cells to NULL so type inference survives
// sparse columns.
func cellValue(row []string, col int, sqlType string) any {
	if col >= len(row) {
		return nil
	}
	v := row[col]
	if v == "" && sqlType != "TEXT" {
		return nil
	}
	return v
}
