package content

import (
	"strings"
	"testing"
)

func TestSystemInstructionNamesCityAndPlanet(t *testing.T) {
	instruction := RoleTourGuide.SystemInstruction("Mars", "New Olympus")

	if !strings.Contains(instruction, "New Olympus") {
		t.Fatalf("expected instruction to name the city, got %q", instruction)
	}
	if !strings.Contains(instruction, "Mars") {
		t.Fatalf("expected instruction to name the planet, got %q", instruction)
	}
	if !strings.Contains(instruction, "children") {
		t.Fatalf("expected instruction to keep the child-friendly register, got %q", instruction)
	}
}

func TestUnknownRoleFallsBackToCitizen(t *testing.T) {
	instruction := Role("pirate").SystemInstruction("Mars", "New Olympus")

	if !strings.Contains(instruction, "citizen") {
		t.Fatalf("expected unknown role to fall back to citizen, got %q", instruction)
	}
}

func TestAstronautPersonaStandsAlone(t *testing.T) {
	persona := AstronautPersona()

	if !strings.Contains(persona, "astronaut") {
		t.Fatalf("expected an astronaut persona, got %q", persona)
	}
	if strings.Contains(persona, "%!") || strings.Contains(persona, "%q") {
		t.Fatalf("expected a fully rendered persona, got %q", persona)
	}
}
