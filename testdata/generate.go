//go:build ignore

// Generates the sample files used in the command examples:
//
//	go run testdata/generate.go
package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	log "github.com/sirupsen/logrus"
)

type Person struct {
	ID     int64  `parquet:"id"`
	Name   string `parquet:"name"`
	Active bool   `parquet:"active"`
}

type Score struct {
	ID    int64   `parquet:"id"`
	Score float64 `parquet:"score"`
}

type Address struct {
	City string `parquet:"city"`
	Zip  string `parquet:"zip"`
}

type Order struct {
	Item   string  `parquet:"item"`
	Amount float64 `parquet:"amount"`
}

type Customer struct {
	Person  int64     `parquet:"person"`
	Address Address   `parquet:"address"`
	Orders  []Order   `parquet:"orders"`
	Since   time.Time `parquet:"since"`
}

func write[T any](dir, name string, rows []T) {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
	log.Infof("generated %s with %d rows", path, len(rows))
}

func main() {
	dir := "testdata"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	write(dir, "people.parquet", []Person{
		{ID: 1, Name: "alice", Active: true},
		{ID: 2, Name: "bob", Active: false},
		{ID: 3, Name: "charlie", Active: true},
	})
	write(dir, "scores.parquet", []Score{
		{ID: 2, Score: 90},
		{ID: 3, Score: 85},
		{ID: 4, Score: 70},
	})
	write(dir, "customers.parquet", []Customer{
		{
			Person:  1,
			Address: Address{City: "Oslo", Zip: "0150"},
			Orders:  []Order{{Item: "pen", Amount: 2.5}, {Item: "ink", Amount: 4}},
			Since:   time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Person:  3,
			Address: Address{City: "Bergen", Zip: "5003"},
			Since:   time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC),
		},
	})
}
