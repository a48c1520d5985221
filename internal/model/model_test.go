package model

import "testing"

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("category %q rejected", c)
		}
	}
	for _, c := range []string{"", "Technical", "music", "TECHNICAL"} {
		if ValidCategory(c) {
			t.Errorf("category %q accepted", c)
		}
	}
}

func TestValidParticipationType(t *testing.T) {
	for _, typ := range []string{TypeSolo, TypeTeam, TypeBoth} {
		if !ValidParticipationType(typ) {
			t.Errorf("type %q rejected", typ)
		}
	}
	for _, typ := range []string{"", "solo", "DUO"} {
		if ValidParticipationType(typ) {
			t.Errorf("type %q accepted", typ)
		}
	}
}
