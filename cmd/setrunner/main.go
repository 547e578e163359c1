package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"setrunner/harness"
)

func main() {
	harness.Main(register)
}

func register(r harness.Registrar) {
	r.Run(mathSet())
	r.Run(stringsSet())

	// the database set needs a reachable server
	if os.Getenv("DB_HOST") != "" {
		if set, err := databaseSet(); err == nil {
			r.Run(set)
		} else {
			fmt.Fprintf(os.Stderr, "Skipping database set: %v\n", err)
		}
	}
}

func expectInt(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: expected %d, got %d", name, want, got)
	}
	return nil
}

func mathSet() harness.TestSet {
	return harness.TestSet{
		Name: "math",
		Cases: []harness.TestCase{
			{
				Name: "add",
				Execute: func(ctx context.Context, env harness.Environment) error {
					return expectInt("1+1", 1+1, 2)
				},
			},
			{
				Name: "sub",
				Execute: func(ctx context.Context, env harness.Environment) error {
					// fails on purpose so the summary shows both markers
					return expectInt("2-1", 2-1, 0)
				},
			},
		},
	}
}

func stringsSet() harness.TestSet {
	var words []string
	return harness.TestSet{
		Name: "strings",
		Environment: harness.EnvironmentFuncs{
			SetUpFn: func(ctx context.Context) error {
				words = []string{"set", "runner"}
				return nil
			},
			TearDownFn: func(ctx context.Context) error {
				words = nil
				return nil
			},
		},
		Cases: []harness.TestCase{
			{
				Name: "join",
				Execute: func(ctx context.Context, env harness.Environment) error {
					if got := strings.Join(words, ""); got != "setrunner" {
						return fmt.Errorf("unexpected join %q", got)
					}
					return nil
				},
			},
			{
				Name: "upper",
				Execute: func(ctx context.Context, env harness.Environment) error {
					if got := strings.ToUpper(words[0]); got != "SET" {
						return fmt.Errorf("unexpected upper %q", got)
					}
					return nil
				},
			},
		},
	}
}

func databaseSet() (harness.TestSet, error) {
	env, err := harness.NewMySQL("database")
	if err != nil {
		return harness.TestSet{}, err
	}
	return harness.TestSet{
		Name:        "database",
		Environment: env,
		Cases: []harness.TestCase{
			{
				Name: "create table",
				Execute: func(ctx context.Context, env harness.Environment) error {
					db, _ := harness.MySQLFrom(env)
					_, err := db.DB().ExecContext(ctx, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64))")
					return err
				},
			},
			{
				Name: "insert and count",
				SetUp: func(ctx context.Context, env harness.Environment) error {
					db, _ := harness.MySQLFrom(env)
					_, err := db.DB().ExecContext(ctx, "INSERT INTO users (id, name) VALUES (1, 'ada')")
					return err
				},
				Execute: func(ctx context.Context, env harness.Environment) error {
					db, _ := harness.MySQLFrom(env)
					var count int
					if err := db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
						return err
					}
					return expectInt("users", count, 1)
				},
				TearDown: func(ctx context.Context, env harness.Environment) error {
					db, _ := harness.MySQLFrom(env)
					_, err := db.DB().ExecContext(ctx, "DELETE FROM users")
					return err
				},
			},
		},
	}, nil
}
