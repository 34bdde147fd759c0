package fisimport

import (
	"math"
	"testing"
)

func TestParseFIS(t *testing.T) {
	model, err := ParseFIS("../testdata/temp_control.fis")
	if err != nil {
		t.Fatalf("Failed to parse FIS: %v", err)
	}

	if model.System.Name != "TemperatureFanControl" {
		t.Errorf("Expected name 'TemperatureFanControl', got '%s'", model.System.Name)
	}
	if model.System.Type != "mamdani" {
		t.Errorf("Expected type 'mamdani', got '%s'", model.System.Type)
	}
	if model.System.NumInputs != 1 {
		t.Errorf("Expected 1 input, got %d", model.System.NumInputs)
	}
	if len(model.Inputs) != 1 {
		t.Fatalf("Expected 1 input variable, got %d", len(model.Inputs))
	}
	if len(model.Outputs) != 1 {
		t.Fatalf("Expected 1 output variable, got %d", len(model.Outputs))
	}
	if len(model.Rules) != 4 {
		t.Fatalf("Expected 4 rules, got %d", len(model.Rules))
	}
}

func TestLoadFIS(t *testing.T) {
	eng, err := LoadFIS("../testdata/temp_control.fis")
	if err != nil {
		t.Fatalf("Failed to load FIS: %v", err)
	}

	if len(eng.InputVariables()) != 1 {
		t.Errorf("Expected 1 input variable, got %d", len(eng.InputVariables()))
	}
	if len(eng.OutputVariables()) != 1 {
		t.Errorf("Expected 1 output variable, got %d", len(eng.OutputVariables()))
	}

	temperature, ok := eng.InputVariable("Temperature")
	if !ok {
		t.Fatal("expected a Temperature input variable")
	}
	temperature.SetValue(40)
	if err := eng.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}

	fanSpeed, ok := eng.OutputVariable("FanSpeed")
	if !ok {
		t.Fatal("expected a FanSpeed output variable")
	}
	if math.IsNaN(fanSpeed.Value()) {
		t.Fatal("FanSpeed.Value() is NaN")
	}
	if fanSpeed.Value() < 60 {
		t.Errorf("Expected a high fan speed (>=60) for temp 40, got %f", fanSpeed.Value())
	}
}

func TestConvertToEngineRejectsUnsupportedType(t *testing.T) {
	model := &FISModel{System: SystemSection{Type: "anfis"}}
	if _, err := ConvertToEngine(model); err == nil {
		t.Error("expected an error for an unsupported system type")
	}
}

func TestConvertToEngineRejectsDeclaredCountMismatch(t *testing.T) {
	model := &FISModel{System: SystemSection{Type: "mamdani", NumInputs: 2}}
	if _, err := ConvertToEngine(model); err == nil {
		t.Error("expected an error when System.NumInputs does not match the parsed [Input#] sections")
	}
}

func TestValidateAcceptsMatchingCounts(t *testing.T) {
	model, err := ParseFIS("../testdata/temp_control.fis")
	if err != nil {
		t.Fatalf("ParseFIS: %v", err)
	}
	if err := model.Validate(); err != nil {
		t.Errorf("Validate on a well-formed model: %v", err)
	}
}
