package main

import (
	"flag"
	"fmt"
	"os"

	"aguagestor/cmd/internal/domain/sqlite"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	"aguagestor/cmd/internal/service"
	"aguagestor/cmd/internal/spreadsheet"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

// Companion CLI for bulk imports: feeds a partner spreadsheet straight into
// the same database the API serves, using the exact reconciliation logic of
// the POST /api/imports endpoint. Meant for operators seeding a fresh
// database or replaying large files without going through HTTP.
func main() {
	var (
		filePath  = flag.String("file", "", "path to the partner spreadsheet (.xlsx)")
		partnerID = flag.Int64("partner", 0, "id of the partner the file belongs to")
		dbPath    = flag.String("db", "", "path to the SQLite database (default ./aguagestor.db)")
		machineID = flag.Int64("machine", 1, "snowflake machine id")
	)
	flag.Parse()

	if *filePath == "" || *partnerID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	uid.Init(*machineID)

	db, err := sqlite.Init(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("failed to open spreadsheet: %v", err)
	}
	defer file.Close()

	rows, err := spreadsheet.Read(file)
	if err != nil {
		log.Fatalf("failed to read spreadsheet: %v", err)
	}

	importService := service.NewImportService(
		repository.NewPartnerRepository(db),
		repository.NewBrandRepository(db),
		repository.NewStoreRepository(db),
	)

	report, err := importService.Run(*partnerID, rows)
	if err != nil {
		log.Fatalf("import aborted: %v", err)
	}

	fmt.Printf("Processed %d rows: %d created, %d updated, %d skipped\n",
		report.Total, report.Created, report.Updated, report.Skipped)

	for _, issue := range report.Issues {
		fmt.Printf("  row %d (%s): %s\n", issue.Row, issue.Store, issue.Reason)
	}

	if report.Skipped > 0 {
		os.Exit(1)
	}
}
