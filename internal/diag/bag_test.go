package diag_test

import (
	"testing"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "one")) {
		t.Error("first add rejected")
	}
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(1, 2), "two"))
	if bag.Add(diag.NewError(diag.SynUnexpectedToken, span(2, 3), "three")) {
		t.Error("add past the limit accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("len %d", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(20, 21), "later"))
	bag.Add(diag.New(diag.SevWarning, diag.LintDuplicateVerse, span(5, 6), "warn"))
	bag.Add(diag.New(diag.SevFatal, diag.LintSabbath, span(5, 6), "fatal"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "fatal" {
		t.Errorf("first %q: same-span fatal must sort before warning", items[0].Message)
	}
	if items[2].Message != "later" {
		t.Errorf("last %q: larger offsets sort last", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "dup"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "dup again"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(3, 4), "other spot"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("len %d after dedup", bag.Len())
	}
}

func TestBagHasErrorsAndFatal(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LintDuplicateVerse, span(0, 1), "warn"))
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	bag.Add(diag.NewError(diag.RunUncaughtSin, span(0, 1), "err"))
	if !bag.HasErrors() {
		t.Error("error not detected")
	}
	if bag.HasFatal() {
		t.Error("error counted as fatal")
	}
	bag.Add(diag.New(diag.SevFatal, diag.LintSabbath, span(0, 1), "halt"))
	if !bag.HasFatal() {
		t.Error("fatal not detected")
	}
}

func TestCodePhases(t *testing.T) {
	cases := []struct {
		code diag.Code
		want diag.Phase
	}{
		{diag.LexUnterminatedString, diag.PhaseLex},
		{diag.SynUnexpectedToken, diag.PhaseParse},
		{diag.LintSabbath, diag.PhaseLint},
		{diag.RunZeroDivision, diag.PhaseRuntime},
	}
	for _, tc := range cases {
		if got := tc.code.Phase(); got != tc.want {
			t.Errorf("%s phase %v, want %v", tc.code.ID(), got, tc.want)
		}
	}
}

func TestBagReporter(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.BagReporter{Bag: bag}
	r.Report(diag.LintProphecy, diag.SevInfo, span(0, 3), "soon", nil)
	if bag.Len() != 1 {
		t.Fatalf("len %d", bag.Len())
	}
	if bag.Items()[0].Code != diag.LintProphecy {
		t.Errorf("code %v", bag.Items()[0].Code)
	}
}
