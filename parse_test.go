package main

import (
	"strings"
	"testing"

	"github.com/wlattner/dtree/data"
)

const wsInput = `1 0 2 1
-1 1 2 0

-1   1 0 0
1 0 0 1
`

func TestParseRecords(t *testing.T) {
	p, err := parseRecords(strings.NewReader(wsInput))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(p.Records) != 4 {
		t.Fatal("expected 4 records, blank lines skipped, got:", len(p.Records))
	}
	if p.Records[1].Label() != data.Negative {
		t.Error("expected second record to be Negative, got:", p.Records[1].Label())
	}
	if p.Records[2].NumAttributes() != 3 {
		t.Error("expected 3 attributes, got:", p.Records[2].NumAttributes())
	}
	if p.Records[0].Value(1) != 2 {
		t.Error("expected value 2, got:", p.Records[0].Value(1))
	}
	if len(p.VarNames) != 3 || p.VarNames[0] != "X1" {
		t.Error("expected default variable names, got:", p.VarNames)
	}
}

func TestParseRecordsBadLabel(t *testing.T) {
	_, err := parseRecords(strings.NewReader("1 0\n2 1\n"))
	if !data.IsInvalidLabel(err) {
		t.Error("expected invalid label error, got:", err)
	}

	if _, err := parseRecords(strings.NewReader("1 a\n")); err == nil {
		t.Error("expected error for non integer attribute")
	}
}

func TestParseCSVHeader(t *testing.T) {
	p, err := parseCSV(strings.NewReader("class,color,size\n1,0,2\n-1,1,2\n"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(p.Records) != 2 {
		t.Fatal("expected 2 records, got:", len(p.Records))
	}
	if p.VarNames[0] != "color" || p.VarNames[1] != "size" {
		t.Error("expected variable names from header, got:", p.VarNames)
	}
	if p.Records[1].Label() != data.Negative || p.Records[1].Value(0) != 1 {
		t.Error("unexpected second record:", p.Records[1].Label(), p.Records[1].Values())
	}
}

func TestParseCSVNoHeader(t *testing.T) {
	p, err := parseCSV(strings.NewReader("1,3,4\n-1,5,6\n1,3,6\n"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(p.Records) != 3 {
		t.Fatal("expected 3 records, got:", len(p.Records))
	}
	if p.VarNames[1] != "X2" {
		t.Error("expected default variable names, got:", p.VarNames)
	}
	if p.Records[0].Value(0) != 3 {
		t.Error("expected first value 3, got:", p.Records[0].Value(0))
	}
}

func TestParseHeader(t *testing.T) {
	if _, err := parseHeader([]string{"y", "a", "b"}); err != nil {
		t.Error("expected header row, got:", err)
	}
	if _, err := parseHeader([]string{"1", "a", "3"}); err == nil {
		t.Error("expected row with numbers not to be a header")
	}
}
