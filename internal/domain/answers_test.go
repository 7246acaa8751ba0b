package domain

import (
	"encoding/json"
	"testing"
)

func TestAnswerValue_UnmarshalBothShapes(t *testing.T) {
	var single AnswerValue
	if err := json.Unmarshal([]byte(`"ardoise"`), &single); err != nil {
		t.Fatalf("string answer: %v", err)
	}
	if single.Multi || single.Choice != "ardoise" {
		t.Fatalf("unexpected single: %#v", single)
	}

	var multi AnswerValue
	if err := json.Unmarshal([]byte(`["cheminee","lucarne"]`), &multi); err != nil {
		t.Fatalf("array answer: %v", err)
	}
	if !multi.Multi || len(multi.Choices) != 2 || multi.Choices[1] != "lucarne" {
		t.Fatalf("unexpected multi: %#v", multi)
	}

	var bad AnswerValue
	if err := json.Unmarshal([]byte(`{"x":1}`), &bad); err == nil {
		t.Fatalf("object should not be a valid answer")
	}
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Fatalf("number should not be a valid answer")
	}
}

func TestAnswerValue_MarshalRoundTrip(t *testing.T) {
	b, err := json.Marshal(Answer("zinc"))
	if err != nil || string(b) != `"zinc"` {
		t.Fatalf("single marshal = %s, err=%v", b, err)
	}

	b, err = json.Marshal(AnswerList("cheminee"))
	if err != nil || string(b) != `["cheminee"]` {
		t.Fatalf("multi marshal = %s, err=%v", b, err)
	}

	// A nil multi list still encodes as an empty array, not null.
	b, err = json.Marshal(AnswerValue{Multi: true})
	if err != nil || string(b) != `[]` {
		t.Fatalf("empty multi marshal = %s, err=%v", b, err)
	}
}

func TestAnswerValue_IsZeroAndValues(t *testing.T) {
	if !Answer("").IsZero() {
		t.Errorf("empty single choice should be zero")
	}
	if Answer("oui_complete").IsZero() {
		t.Errorf("non-empty single choice should not be zero")
	}
	// An explicitly empty list is a valid answer ("no elements").
	if AnswerList().IsZero() {
		t.Errorf("empty list should not be zero")
	}

	if got := Answer("zinc").Values(); len(got) != 1 || got[0] != "zinc" {
		t.Errorf("single Values = %#v", got)
	}
	if got := Answer("").Values(); got != nil {
		t.Errorf("empty Values = %#v", got)
	}
	if got := AnswerList("a", "b").Values(); len(got) != 2 {
		t.Errorf("multi Values = %#v", got)
	}
}

func TestAnswerMap_ValueAndScan(t *testing.T) {
	m := AnswerMap{
		"roof_type":     Answer("ardoise"),
		"roof_elements": AnswerList("cheminee", "lucarne"),
	}

	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("Value type = %T", v)
	}

	var back AnswerMap
	if err := back.Scan(s); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if back["roof_type"].Choice != "ardoise" {
		t.Errorf("roof_type after round trip: %#v", back["roof_type"])
	}
	if el := back["roof_elements"]; !el.Multi || len(el.Choices) != 2 {
		t.Errorf("roof_elements after round trip: %#v", el)
	}
}

func TestAnswerMap_NilAndNullHandling(t *testing.T) {
	var nilMap AnswerMap
	v, err := nilMap.Value()
	if err != nil || v != "{}" {
		t.Fatalf("nil map Value = %v, err=%v", v, err)
	}

	var m AnswerMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Fatalf("Scan(nil) should yield empty map, got %#v", m)
	}

	if err := m.Scan([]byte(`{"insulation":"non"}`)); err != nil {
		t.Fatalf("Scan(bytes): %v", err)
	}
	if m["insulation"].Choice != "non" {
		t.Fatalf("scanned map = %#v", m)
	}

	if err := m.Scan(12); err == nil {
		t.Fatalf("non-text source should fail")
	}
}
