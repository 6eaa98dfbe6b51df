package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// errStoreUnavailable marks a failure to reach the log store (network, auth,
// outage). Callers use errors.Is to tell it apart from "no data yet", which
// is an empty result and not an error at all.
var errStoreUnavailable = errors.New("log store unavailable")

// snapshot is one consistent read of all four source categories.
type snapshot struct {
	Weights  []weightRow
	Macros   []macroRow
	Workouts []workoutRow
	Profile  *userProfile
}

// LogStore is the external store the engine reads raw entries from and
// appends new entries to. Dates travel as opaque strings; the store never
// normalizes them.
type LogStore interface {
	LoadWeights(ctx context.Context) ([]weightRow, error)
	LoadMacros(ctx context.Context) ([]macroRow, error)
	LoadWorkouts(ctx context.Context) ([]workoutRow, error)
	LoadProfile(ctx context.Context) (*userProfile, error)

	AppendMacro(ctx context.Context, req createMacroRequest) (macroRow, error)
	AppendWorkout(ctx context.Context, req createWorkoutRequest) (workoutRow, error)
	UpsertWeight(ctx context.Context, req upsertWeightRequest) (weightRow, error)
	SaveProfile(ctx context.Context, p userProfile) (userProfile, error)

	// SourceID identifies the backing source; it keys the snapshot cache.
	SourceID() string
}

// loadSnapshot fetches the four categories concurrently and joins before
// returning — the categories have no ordering dependency but fusion needs
// all of them. Any single failure fails the whole load.
func loadSnapshot(ctx context.Context, store LogStore) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := store.LoadWeights(ctx)
		snap.Weights = rows
		return err
	})
	g.Go(func() error {
		rows, err := store.LoadMacros(ctx)
		snap.Macros = rows
		return err
	})
	g.Go(func() error {
		rows, err := store.LoadWorkouts(ctx)
		snap.Workouts = rows
		return err
	})
	g.Go(func() error {
		p, err := store.LoadProfile(ctx)
		snap.Profile = p
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

/* ─── Postgres implementation ────────────────────────────────────────── */

// pgStore backs LogStore with Postgres. The log tables keep the date column
// as text, mirroring the source sheets — raw entries are stored exactly as
// submitted and cleaned up only at read time.
type pgStore struct {
	db       *pgxpool.Pool
	sourceID string
}

// newPGStore creates a connection pool from DB_URL. We use a pool (not a
// single conn) because Neon closes idle connections after ~5 minutes.
func newPGStore() *pgStore {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return &pgStore{db: pool, sourceID: config.ConnConfig.Database}
}

func (s *pgStore) SourceID() string { return s.sourceID }

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return results, nil
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	var zero T
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		return zero, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, pgx.ErrNoRows
		}
		log.Printf("[queryOne] Scan error: %v", err)
		return zero, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return result, nil
}

func (s *pgStore) LoadWeights(ctx context.Context) ([]weightRow, error) {
	return queryMany[weightRow](ctx, s.db,
		"SELECT * FROM weight_entries ORDER BY created_at", pgx.NamedArgs{})
}

func (s *pgStore) LoadMacros(ctx context.Context) ([]macroRow, error) {
	return queryMany[macroRow](ctx, s.db,
		"SELECT * FROM macro_entries ORDER BY created_at", pgx.NamedArgs{})
}

func (s *pgStore) LoadWorkouts(ctx context.Context) ([]workoutRow, error) {
	return queryMany[workoutRow](ctx, s.db,
		"SELECT * FROM workout_entries ORDER BY created_at", pgx.NamedArgs{})
}

// LoadProfile returns nil with no error when the profile has never been
// configured — that is a valid state, not a failure.
func (s *pgStore) LoadProfile(ctx context.Context) (*userProfile, error) {
	p, err := queryOne[userProfile](ctx, s.db,
		"SELECT gender, height_cm, age, goal_weight_kg FROM profile WHERE id = 1", pgx.NamedArgs{})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) AppendMacro(ctx context.Context, req createMacroRequest) (macroRow, error) {
	return queryOne[macroRow](ctx, s.db,
		`INSERT INTO macro_entries (id, date, meal, protein_g, carbs_g, fats_g)
		 VALUES (@id, @date, @meal, @proteinG, @carbsG, @fatsG)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "date": req.Date, "meal": req.Meal,
			"proteinG": req.ProteinG, "carbsG": req.CarbsG, "fatsG": req.FatsG,
		})
}

func (s *pgStore) AppendWorkout(ctx context.Context, req createWorkoutRequest) (workoutRow, error) {
	return queryOne[workoutRow](ctx, s.db,
		`INSERT INTO workout_entries (id, date, exercise, calories_burned)
		 VALUES (@id, @date, @exercise, @burned)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "date": req.Date,
			"exercise": req.Exercise, "burned": req.CaloriesBurned,
		})
}

// UpsertWeight enforces one authoritative weight per date: posting the same
// date again overwrites in place via the UNIQUE(date) constraint.
func (s *pgStore) UpsertWeight(ctx context.Context, req upsertWeightRequest) (weightRow, error) {
	return queryOne[weightRow](ctx, s.db,
		`INSERT INTO weight_entries (id, date, weight_kg)
		 VALUES (@id, @date, @weightKG)
		 ON CONFLICT (date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"id": uuid.New().String(), "date": req.Date, "weightKG": req.WeightKG})
}

func (s *pgStore) SaveProfile(ctx context.Context, p userProfile) (userProfile, error) {
	return queryOne[userProfile](ctx, s.db,
		`INSERT INTO profile (id, gender, height_cm, age, goal_weight_kg)
		 VALUES (1, @gender, @heightCM, @age, @goalWeightKG)
		 ON CONFLICT (id) DO UPDATE SET
			gender = EXCLUDED.gender,
			height_cm = EXCLUDED.height_cm,
			age = EXCLUDED.age,
			goal_weight_kg = EXCLUDED.goal_weight_kg
		 RETURNING gender, height_cm, age, goal_weight_kg`,
		pgx.NamedArgs{
			"gender": p.Gender, "heightCM": p.HeightCM,
			"age": p.Age, "goalWeightKG": p.GoalWeightKG,
		})
}
