package renderer

import "testing"

const testBirthWindow = 0.75

func TestCoreSeedFullyRevealedAtLowestAnchor(t *testing.T) {
	eases := coreLayerEases(0, testBirthWindow)

	if eases.seed != 1 {
		t.Errorf("seed ease at stage 0 = %v, want 1", eases.seed)
	}
	for name, e := range map[string]float64{
		"sixRing":  eases.sixRing,
		"twelve":   eases.twelve,
		"hexagram": eases.hexagram,
		"graph":    eases.graph,
		"spiral":   eases.spiral,
	} {
		if e != 0 {
			t.Errorf("%s ease at stage 0 = %v, want 0", name, e)
		}
	}
}

func TestCoreAllLayersRevealedAtHighestAnchor(t *testing.T) {
	eases := coreLayerEases(6, testBirthWindow)

	for name, e := range map[string]float64{
		"seed":     eases.seed,
		"sixRing":  eases.sixRing,
		"twelve":   eases.twelve,
		"hexagram": eases.hexagram,
		"graph":    eases.graph,
		"spiral":   eases.spiral,
	} {
		if e != 1 {
			t.Errorf("%s ease at stage 6 = %v, want 1", name, e)
		}
	}
}

func TestCoreLayersEaseInOverBirthWindow(t *testing.T) {
	mid := coreLayerEases(birthSixRing+testBirthWindow/2, testBirthWindow)
	if mid.sixRing <= 0 || mid.sixRing >= 1 {
		t.Errorf("sixRing ease mid-window = %v, want in (0, 1)", mid.sixRing)
	}

	before := coreLayerEases(birthSixRing-0.01, testBirthWindow)
	if before.sixRing != 0 {
		t.Errorf("sixRing ease before birth = %v, want 0", before.sixRing)
	}
}
