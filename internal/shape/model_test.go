package shape

import "testing"

func TestNewColorsDefaults(t *testing.T) {
	bg, def, prog := RGBA(1, 1, 1, 255), RGBA(2, 2, 2, 255), RGBA(3, 3, 3, 255)
	cs := NewColors(bg, def, prog)
	if cs.ParticleDefault != def || cs.LineDefault != def {
		t.Fatalf("default overrides = %+v / %+v, want %+v", cs.ParticleDefault, cs.LineDefault, def)
	}
	if cs.ParticleProgress != prog || cs.LineProgress != prog {
		t.Fatalf("progress overrides = %+v / %+v, want %+v", cs.ParticleProgress, cs.LineProgress, prog)
	}

	line := RGBA(9, 9, 9, 9)
	got := cs.With(WithLineProgress(line))
	if got.LineProgress != line || got.ParticleProgress != prog {
		t.Fatalf("With changed the wrong fields: %+v", got)
	}
	if cs.LineProgress != prog {
		t.Fatalf("With mutated the receiver")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"one", TypeOne},
		{"Three", TypeThree},
		{" five ", TypeFive},
		{"1", TypeTwo},
		{"4", TypeFive},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "six", "5", "-1"} {
		if _, err := ParseType(bad); err == nil {
			t.Fatalf("ParseType(%q) succeeded", bad)
		}
	}
}

func TestNewModelUsesPreset(t *testing.T) {
	m := NewModel(TypeTwo, Colors{}, 7, 15)
	if m.X1 != 4.283176 || m.Y1 != 3.518178 || m.X2 != 3.683177 || m.Y2 != 3.668177 {
		t.Fatalf("TypeTwo constants = %v %v %v %v", m.X1, m.Y1, m.X2, m.Y2)
	}
	if m.LineWidth != 7 || m.ParticleRadius != 15 {
		t.Fatalf("sizing = %v/%v", m.LineWidth, m.ParticleRadius)
	}
	if Type(42).Constants() != TypeOne.Constants() {
		t.Fatalf("unknown type should fall back to TypeOne")
	}
	if Type(42).String() != "Type(42)" {
		t.Fatalf("String() = %q", Type(42).String())
	}
}
