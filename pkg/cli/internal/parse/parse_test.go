package parse

import (
	"testing"
)

func TestIDs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []int64
		wantErr bool
	}{
		{"single", []string{"7"}, []int64{7}, false},
		{"separate", []string{"1", "2"}, []int64{1, 2}, false},
		{"comma list", []string{"1,2", "3"}, []int64{1, 2, 3}, false},
		{"trailing comma", []string{"4,"}, []int64{4}, false},
		{"zero", []string{"0"}, nil, true},
		{"negative", []string{"-3"}, nil, true},
		{"word", []string{"abc"}, nil, true},
		{"empty", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IDs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("IDs(%v) = %v, want %v", tt.args, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("IDs(%v)[%d] = %d, want %d", tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEnum(t *testing.T) {
	words := []string{"enabled", "disabled"}
	values := []int{1, 0}

	if v, err := Enum("Enabled", words, values); err != nil || v != 1 {
		t.Errorf("Enum(Enabled) = %d, %v", v, err)
	}
	if v, err := Enum("disabled", words, values); err != nil || v != 0 {
		t.Errorf("Enum(disabled) = %d, %v", v, err)
	}
	_, err := Enum("paused", words, values)
	if err == nil || err.Error() != `invalid value "paused" (want one of: enabled, disabled)` {
		t.Errorf("Enum(paused) error = %v", err)
	}
}

func TestBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "1", "on"} {
		if b, err := Bool(s); err != nil || !b {
			t.Errorf("Bool(%q) = %v, %v", s, b, err)
		}
	}
	for _, s := range []string{"false", "no", "0", "Off"} {
		if b, err := Bool(s); err != nil || b {
			t.Errorf("Bool(%q) = %v, %v", s, b, err)
		}
	}
	if _, err := Bool("maybe"); err == nil {
		t.Error("Bool(maybe) should fail")
	}
}
