package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xh3b4sd/tracer"

	"github.com/wlattner/dtree/data"
)

type parsedInput struct {
	Records  []data.Record
	VarNames []string
}

func loadInput(path, format string) (*parsedInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	defer f.Close()

	var p *parsedInput
	switch format {
	case "csv":
		p, err = parseCSV(f)
	default:
		p, err = parseRecords(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// parseRecords reads one example per line, whitespace separated integers
// with the +1/-1 label first. Blank lines are skipped.
func parseRecords(r io.Reader) (*parsedInput, error) {
	p := &parsedInput{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		row := strings.Fields(scanner.Text())
		if len(row) == 0 {
			continue
		}

		if err := p.ParseRow(row); err != nil {
			return p, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return p, err
	}

	p.defaultVarNames()

	return p, nil
}

// parse csv file, detect if first row is header/has var names
func parseCSV(r io.Reader) (*parsedInput, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	df := dataframe.ReadCSV(bytes.NewReader(b),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, df.Err
	}

	p := &parsedInput{}

	row := make([]string, df.Ncol())
	for i := 0; i < df.Nrow(); i++ {
		for j := range row {
			row[j] = strings.TrimSpace(df.Elem(i, j).String())
		}

		// check if the first row is a header row
		if i == 0 && len(row) > 1 {
			if varNames, err := parseHeader(row); err == nil {
				p.VarNames = varNames
				continue
			}
		}

		if err := p.ParseRow(row); err != nil {
			return p, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	p.defaultVarNames()

	return p, nil
}

// use X1, X2,...Xn for var names
func (p *parsedInput) defaultVarNames() {
	if p.VarNames != nil || len(p.Records) == 0 {
		return
	}
	for i := 0; i < p.Records[0].NumAttributes(); i++ {
		p.VarNames = append(p.VarNames, fmt.Sprintf("X%d", i+1))
	}
}

func (p *parsedInput) ParseRow(row []string) error {
	if len(row) < 1 {
		return errors.New("empty row")
	}

	y, err := strconv.Atoi(row[0])
	if err != nil {
		return err
	}
	label, err := data.ParseLabel(y)
	if err != nil {
		return err
	}

	xi, err := parseFeatureVals(row)
	if err != nil {
		return err
	}

	p.Records = append(p.Records, data.NewRecord(label, xi...))
	return nil
}

func parseFeatureVals(row []string) ([]int, error) {
	xi := make([]int, 0, len(row)-1)
	for _, val := range row[1:] {
		v, err := strconv.Atoi(val)
		if err != nil {
			return xi, err
		}
		xi = append(xi, v)
	}
	return xi, nil
}

func parseHeader(row []string) ([]string, error) {
	colNames := []string{}

	// we only accept integer values, so we can consider the first row
	// as a header row if one or more of the values isn't a number
	if len(row) > 1 {
		for _, val := range row[1:] {
			_, err := strconv.Atoi(val)
			if err == nil {
				return colNames, errors.New("not a header row")
			}

			colNames = append(colNames, val)
		}
	}

	return colNames, nil
}
