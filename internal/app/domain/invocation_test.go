package domain

import "testing"

func TestParseInvocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantTrigger string
		wantArgs    string
	}{
		{"trigger with args", "!go north", "go", "north"},
		{"trigger only", "!go", "go", ""},
		{"upper case trigger", "!GO North", "go", "North"},
		{"extra spaces", "!go   north east  ", "go", "north east"},
		{"no marker", "go north", "go", "north"},
		{"bare marker", "!", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := ParseInvocation(tt.input)
			if inv.Trigger != tt.wantTrigger {
				t.Fatalf("trigger: got %q, want %q", inv.Trigger, tt.wantTrigger)
			}
			if inv.Args != tt.wantArgs {
				t.Fatalf("args: got %q, want %q", inv.Args, tt.wantArgs)
			}
		})
	}
}
