// CLI tool to configure the single active profile used for maintenance and
// ETA metrics.
// Usage: go run ./cmd/seed-profile (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	gender := prompt(reader, "Gender (Male/Female): ")
	if gender != "Male" && gender != "Female" {
		fmt.Fprintln(os.Stderr, "Gender must be Male or Female")
		os.Exit(1)
	}

	heightCM, err := strconv.ParseFloat(prompt(reader, "Height (cm): "), 64)
	if err != nil || heightCM <= 0 {
		fmt.Fprintln(os.Stderr, "Invalid height")
		os.Exit(1)
	}

	age, err := strconv.Atoi(prompt(reader, "Age: "))
	if err != nil || age <= 0 {
		fmt.Fprintln(os.Stderr, "Invalid age")
		os.Exit(1)
	}

	var goalWeightKG *float64
	if raw := prompt(reader, "Goal weight kg (blank for none): "); raw != "" {
		g, err := strconv.ParseFloat(raw, 64)
		if err != nil || g <= 0 {
			fmt.Fprintln(os.Stderr, "Invalid goal weight")
			os.Exit(1)
		}
		goalWeightKG = &g
	}

	_, err = conn.Exec(context.Background(),
		`INSERT INTO profile (id, gender, height_cm, age, goal_weight_kg)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			gender = EXCLUDED.gender,
			height_cm = EXCLUDED.height_cm,
			age = EXCLUDED.age,
			goal_weight_kg = EXCLUDED.goal_weight_kg`,
		gender, heightCM, age, goalWeightKG)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nProfile saved.")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
