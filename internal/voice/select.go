package voice

import "strings"

// SystemVoice describes one voice offered by the speech backend.
type SystemVoice struct {
	ID   string
	Name string
}

// Choose picks a voice deterministically: an exact or substring match
// on the preferred name wins, then a voice whose name carries the
// gender keyword, then the first voice. Returns false only when the
// backend offers no voices at all.
func Choose(voices []SystemVoice, preferredName, genderKeyword string) (SystemVoice, bool) {
	if len(voices) == 0 {
		return SystemVoice{}, false
	}

	if preferredName != "" {
		want := strings.ToLower(preferredName)
		for _, v := range voices {
			if strings.Contains(strings.ToLower(v.Name), want) {
				return v, true
			}
		}
	}

	if genderKeyword != "" {
		want := strings.ToLower(genderKeyword)
		for _, v := range voices {
			if nameMatchesGender(v.Name, want) {
				return v, true
			}
		}
		// Settle for the first voice that does not carry the
		// conflicting gender.
		conflict := "male"
		if want == "male" {
			conflict = "female"
		}
		for _, v := range voices {
			if !nameMatchesGender(v.Name, conflict) {
				return v, true
			}
		}
	}

	return voices[0], true
}

// nameMatchesGender reports whether the voice name carries the gender
// keyword. "male" must not match "female".
func nameMatchesGender(name, gender string) bool {
	name = strings.ToLower(name)
	if gender == "male" && strings.Contains(name, "female") {
		return false
	}
	return strings.Contains(name, gender)
}
