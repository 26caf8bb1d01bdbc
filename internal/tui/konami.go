package tui

var konamiCode = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// konami is a rolling window over the last len(konamiCode) keys.
type konami struct {
	keys []string
}

// push records key and reports whether the window now spells the code.
func (k *konami) push(key string) bool {
	k.keys = append(k.keys, key)
	if len(k.keys) > len(konamiCode) {
		k.keys = k.keys[len(k.keys)-len(konamiCode):]
	}
	if len(k.keys) != len(konamiCode) {
		return false
	}
	for i, want := range konamiCode {
		if k.keys[i] != want {
			return false
		}
	}
	return true
}
