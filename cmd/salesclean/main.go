// Command salesclean cleans a raw sales CSV export: it standardizes column
// names, fills missing values, drops rows with an unusable price or quantity
// and writes the result as a new CSV file.
//
// Usage:
//
//	salesclean [--config FILE] [--validate] [-v]
//
// Without --config the tool reads data/raw/sales_data_raw.csv and writes
// data/processed/sales_data_clean.csv.
package main

import (
	"context"
	"os"

	_ "salesclean/internal/storage/all"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
