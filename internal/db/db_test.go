package db

import "testing"

func TestOptions_DSN(t *testing.T) {
	o := Options{Host: "localhost", Port: "5432", Name: "inventory", User: "app", Password: "secret"}

	want := "host=localhost port=5432 dbname=inventory user=app password=secret sslmode=disable"
	if got := o.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}

	o.SSLMode = "require"
	want = "host=localhost port=5432 dbname=inventory user=app password=secret sslmode=require"
	if got := o.DSN(); got != want {
		t.Errorf("DSN with sslmode: got %q, want %q", got, want)
	}
}

func TestOptions_URL(t *testing.T) {
	o := Options{Host: "db", Port: "5433", Name: "inventory", User: "app", Password: "p@ss"}

	want := "postgres://app:p%40ss@db:5433/inventory?sslmode=disable"
	if got := o.URL(); got != want {
		t.Errorf("URL: got %q, want %q", got, want)
	}
}
