package voice

import "testing"

func testVoices() []SystemVoice {
	return []SystemVoice{
		{ID: "v1", Name: "Daniel (English)"},
		{ID: "v2", Name: "Google UK English Male"},
		{ID: "v3", Name: "Google UK English Female"},
		{ID: "v4", Name: "Samantha"},
	}
}

func TestChoose_PreferredNameWins(t *testing.T) {
	v, ok := Choose(testVoices(), "samantha", "male")
	if !ok || v.ID != "v4" {
		t.Fatalf("expected Samantha, got %+v", v)
	}
}

func TestChoose_GenderKeywordFallback(t *testing.T) {
	v, ok := Choose(testVoices(), "Karen", "female")
	if !ok || v.ID != "v3" {
		t.Fatalf("expected the female voice, got %+v", v)
	}
}

func TestChoose_MaleDoesNotMatchFemale(t *testing.T) {
	voices := []SystemVoice{
		{ID: "f", Name: "Google US English Female"},
		{ID: "m", Name: "Google US English Male"},
	}
	v, ok := Choose(voices, "", "male")
	if !ok || v.ID != "m" {
		t.Fatalf("expected the male voice, got %+v", v)
	}
}

func TestChoose_FirstVoiceFallback(t *testing.T) {
	v, ok := Choose(testVoices(), "Karen", "robot")
	if !ok || v.ID != "v1" {
		t.Fatalf("expected first voice, got %+v", v)
	}
}

func TestChoose_FallbackSkipsConflictingGender(t *testing.T) {
	voices := []SystemVoice{
		{ID: "m", Name: "Microsoft Male Voice"},
		{ID: "n", Name: "Neutral Narrator"},
	}
	v, ok := Choose(voices, "zephyr", "female")
	if !ok || v.ID != "n" {
		t.Fatalf("expected the non-male fallback, got %+v", v)
	}
}

func TestChoose_AllConflictingFallsToFirst(t *testing.T) {
	voices := []SystemVoice{
		{ID: "m1", Name: "Male One"},
		{ID: "m2", Name: "Male Two"},
	}
	v, ok := Choose(voices, "", "female")
	if !ok || v.ID != "m1" {
		t.Fatalf("expected first voice when all conflict, got %+v", v)
	}
}

func TestChoose_NoVoices(t *testing.T) {
	if _, ok := Choose(nil, "any", "female"); ok {
		t.Fatal("expected no selection from empty list")
	}
}
