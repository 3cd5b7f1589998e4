package importer

import "testing"

func TestLooksLikeStamp(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"05/02/2026 10:00:00", true},
		{"5/2/2026 9:05:00", true},
		{" 05/02/2026 10:00:00 ", true},
		{"05/02/2026", false},
		{"Nom du référent", false},
		{"", false},
		{"2026-02-05 10:00:00", false},
	}
	for _, tt := range tests {
		if got := LooksLikeStamp(tt.in); got != tt.want {
			t.Errorf("LooksLikeStamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFirstInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3, Du 7 au 10", 3},
		{"environ 2 sacs", 2},
		{"aucun", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := FirstInt(tt.in); got != tt.want {
			t.Errorf("FirstInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDateIn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"05/02/2026", "2026-02-05"},
		{"arrivée le 05/02/2026 vers midi", "2026-02-05"},
		// Two-digit-year defect: 26 means 2026, not 0026.
		{"05/02/26", "2026-02-05"},
		{"31/02/2026", ""},
		{"pas encore décidé", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateIn(tt.in); got != tt.want {
			t.Errorf("DateIn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddNights(t *testing.T) {
	if got := AddNights("2026-02-05", 3); got != "2026-02-08" {
		t.Errorf("AddNights = %q, want %q", got, "2026-02-08")
	}
	if got := AddNights("", 3); got != "" {
		t.Errorf("AddNights on unset date = %q, want empty", got)
	}
	// Month rollover
	if got := AddNights("2026-02-27", 5); got != "2026-03-04" {
		t.Errorf("AddNights = %q, want %q", got, "2026-03-04")
	}
}

func TestAffirmative(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Oui", true},
		{"oui, besoin de la navette", true},
		{"Yes please", true},
		{"I need a transfer", true},
		{"Sí, necesito", true},
		{"Non", false},
		{"no thanks", false},
		{"", false},
		// Token must match a whole word.
		{"ouistiti", false},
	}
	for _, tt := range tests {
		if got := Affirmative(tt.in); got != tt.want {
			t.Errorf("Affirmative(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFoldKey(t *testing.T) {
	if FoldKey(" AB123456 ") != FoldKey("ab123456") {
		t.Error("expected passport keys to fold equal")
	}
	if FoldKey("Dupont") == FoldKey("Dupond") {
		t.Error("different names must not fold equal")
	}
	if FoldKey("") != "" {
		t.Error("empty key must stay empty")
	}
}
