package models

import (
	"testing"
	"time"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "InvalidCategory", "informática", "Informatics"} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestCondition_Valid(t *testing.T) {
	for _, c := range Conditions {
		if !c.Valid() {
			t.Errorf("condition %q should be valid", c)
		}
	}
	for _, c := range []Condition{"", "Very Bad", "novo"} {
		if c.Valid() {
			t.Errorf("condition %q should be invalid", c)
		}
	}
}

func TestEquipment_DateStrings(t *testing.T) {
	var e Equipment
	if e.AcquiredOnString() != "" || e.DeliveredOnString() != "" {
		t.Fatalf("zero dates should format empty, got %q / %q", e.AcquiredOnString(), e.DeliveredOnString())
	}

	delivered := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	e.AcquiredOn = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	e.DeliveredOn = &delivered
	if got := e.AcquiredOnString(); got != "2024-01-10" {
		t.Errorf("AcquiredOnString: got %q", got)
	}
	if got := e.DeliveredOnString(); got != "2024-02-01" {
		t.Errorf("DeliveredOnString: got %q", got)
	}
}
