// Command attendance-report prints per-member attendance totals across all
// closed club events. Meant to be run periodically, like before the
// end-of-season review.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/baetodi/club/internal/adapters/repository/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	scheduleRepo := postgres.NewScheduleRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	memberRepo := postgres.NewMemberRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting attendance report...")

	schedules, err := scheduleRepo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Error loading schedules: %v", err)
	}

	totals := make(map[uuid.UUID]int)
	events := 0
	for _, sch := range schedules {
		if !sch.Closed || !sch.IsEvent {
			continue
		}
		events++

		rows, err := attendanceRepo.GetBySchedule(ctx, sch.ID)
		if err != nil {
			log.Fatalf("Error loading attendance for %s: %v", sch.ID, err)
		}
		for _, row := range rows {
			if row.Exempt {
				continue
			}
			totals[row.MemberID]++
		}
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}

	members, err := memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Fatalf("Error loading members: %v", err)
	}
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.ID] = m.DisplayName()
	}

	type line struct {
		name  string
		count int
	}
	lines := make([]line, 0, len(totals))
	for id, count := range totals {
		name := names[id]
		if name == "" {
			name = id.String()[:6]
		}
		lines = append(lines, line{name: name, count: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].count != lines[j].count {
			return lines[i].count > lines[j].count
		}
		return lines[i].name < lines[j].name
	})

	fmt.Printf("Attendance across %d events:\n", events)
	for _, l := range lines {
		fmt.Printf("  %-24s %d\n", l.name, l.count)
	}

	log.Println("Attendance report completed successfully.")
}
