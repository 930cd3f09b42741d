package agents

import "testing"

func TestAllProfilesComplete(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 personas, got %d", len(all))
	}
	for _, p := range all {
		if p.Name == "" || p.AvatarGlyph == "" || p.VoiceID == "" || p.SystemInstruction == "" {
			t.Errorf("persona %q has missing fields: %+v", p.Name, p)
		}
	}
}

func TestGet(t *testing.T) {
	p, err := Get("Eva")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AvatarGlyph != "❤️" {
		t.Errorf("unexpected avatar for Eva: %q", p.AvatarGlyph)
	}

	if _, err := Get("Nobody"); err == nil {
		t.Fatal("expected error for unknown persona")
	}
}

func TestDefault(t *testing.T) {
	if Default().Name != "Adam" {
		t.Fatalf("expected Adam as default, got %q", Default().Name)
	}
}
