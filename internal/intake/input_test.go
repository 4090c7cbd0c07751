package intake

import (
	"testing"
	"time"
)

func TestDecode_RejectsNonObjects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"name": "Alice",`},
		{"empty", ``},
		{"null", `null`},
		{"array", `[{"name": "Alice"}]`},
		{"string", `"Alice"`},
		{"number", `42`},
		{"object field", `{"name": {"first": "Alice"}}`},
		{"bad symptom", `{"symptoms": [{"name": "Fever"}]}`},
		{"oversized pair", `{"symptoms": [["Fever", "Mild", "extra"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != KindInvalidInput {
				t.Errorf("expected invalid_input, got %s", KindOf(err))
			}
			ie := err.(*Error)
			if ie.ResponseMessage() != MsgInvalidJSON {
				t.Errorf("expected %q, got %q", MsgInvalidJSON, ie.ResponseMessage())
			}
		})
	}
}

func TestDecode_LooseScalars(t *testing.T) {
	in, err := Decode([]byte(`{"name": 12, "status": true, "notes": null, "disease_name": 1.50}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Name != "12" {
		t.Errorf("expected name 12, got %q", in.Name)
	}
	if in.Status != "1" {
		t.Errorf("expected status 1, got %q", in.Status)
	}
	if in.Notes != "" {
		t.Errorf("expected empty notes, got %q", in.Notes)
	}
	if in.DiseaseName != "1.5" {
		t.Errorf("expected disease 1.5, got %q", in.DiseaseName)
	}

	fields := in.Fields()
	want := []string{"disease_name", "name", "notes", "status"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("expected fields %v, got %v", want, fields)
			break
		}
	}
}

func TestDecode_Symptoms(t *testing.T) {
	in, err := Decode([]byte(`{"symptoms": ["Fever", ["Cough", "Severe"], ["Rash"], ["Chills", null]]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		name     string
		severity string
	}{
		{"Fever", "Mild"},
		{"Cough", "Severe"},
		{"Rash", "Mild"},
		{"Chills", "Mild"},
	}
	if len(in.Symptoms) != len(want) {
		t.Fatalf("expected %d symptoms, got %d", len(want), len(in.Symptoms))
	}
	for i, w := range want {
		got := in.Symptoms[i]
		if string(got.Name) != w.name || got.SeverityOrDefault() != w.severity {
			t.Errorf("symptom %d: expected (%s, %s), got (%s, %s)", i, w.name, w.severity, got.Name, got.SeverityOrDefault())
		}
	}
}

func TestDecode_NonArraySymptomsAreIgnored(t *testing.T) {
	for _, body := range []string{
		`{"symptoms": "Fever"}`,
		`{"symptoms": null}`,
		`{"symptoms": false}`,
		`{"symptoms": {"0": "Fever"}}`,
	} {
		in, err := Decode([]byte(body))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", body, err)
		}
		if len(in.Symptoms) != 0 {
			t.Errorf("%s: expected no symptoms, got %d", body, len(in.Symptoms))
		}
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	complete := `"name": "Alice", "disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01"`

	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01"}`},
		{"no disease", `{"name": "Alice", "birth_date": "2000-01-01", "admission_date": "2024-03-01"}`},
		{"no birth date", `{"name": "Alice", "disease_name": "Flu", "admission_date": "2024-03-01"}`},
		{"no admission date", `{"name": "Alice", "disease_name": "Flu", "birth_date": "2000-01-01"}`},
		{"blank name", `{"name": "   ", "disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01"}`},
		{"zero string", `{"name": "0", "disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01"}`},
		{"zero number", `{"name": "Alice", "disease_name": 0, "birth_date": "2000-01-01", "admission_date": "2024-03-01"}`},
		{"false", `{"name": "Alice", "disease_name": "Flu", "birth_date": false, "admission_date": "2024-03-01"}`},
		{"empty object", `{}`},
		{"missing plus symptoms", `{"name": "Alice", "symptoms": ["Fever"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			err = in.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			ie := err.(*Error)
			if ie.Kind != KindInvalidInput || ie.ResponseMessage() != MsgMissingFields {
				t.Errorf("expected (invalid_input, %q), got (%s, %q)", MsgMissingFields, ie.Kind, ie.ResponseMessage())
			}
		})
	}

	in, err := Decode([]byte(`{` + complete + `}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("expected complete input to validate, got %v", err)
	}
}

func TestValidate_UnnamedSymptomAccepted(t *testing.T) {
	in, err := Decode([]byte(`{"name": "Alice", "disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01", "symptoms": ["Fever", [""], "  "]}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected unnamed symptoms to pass validation, got %v", err)
	}
	if len(in.Symptoms) != 3 || in.Symptoms[1].Name != "" || in.Symptoms[2].Name != "  " {
		t.Errorf("unexpected symptoms %+v", in.Symptoms)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	in, err := Decode([]byte(`{"name": "Alice", "disease_name": "Flu", "birth_date": "2000-01-01", "admission_date": "2024-03-01", "status": "0"}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	a, err := in.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != "STABLE" {
		t.Errorf("expected default status STABLE, got %q", a.Status)
	}
	if a.Notes != "" {
		t.Errorf("expected empty notes, got %q", a.Notes)
	}
	if !a.BirthDate.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected birth date %s", a.BirthDate)
	}
	if !a.AdmissionDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected admission date %s", a.AdmissionDate)
	}
}

func TestNormalize_KeepsProvidedValues(t *testing.T) {
	in, err := Decode([]byte(`{"name": "Bob", "disease_name": "Asthma", "birth_date": "1985-07-14", "admission_date": "2024-03-02", "status": "CRITICAL", "notes": "allergic to penicillin"}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	a, err := in.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != "CRITICAL" || a.Notes != "allergic to penicillin" || a.Name != "Bob" || a.DiseaseName != "Asthma" {
		t.Errorf("unexpected admission %+v", a)
	}
}

func TestNormalize_InvalidDate(t *testing.T) {
	in, err := Decode([]byte(`{"name": "Alice", "disease_name": "Flu", "birth_date": "yesterday-ish", "admission_date": "2024-03-01"}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	_, err = in.Normalize()
	if err == nil {
		t.Fatal("expected date error")
	}
	ie := err.(*Error)
	if ie.Kind != KindInvalidInput || ie.ResponseMessage() != "Invalid date: birth_date" {
		t.Errorf("unexpected error (%s, %q)", ie.Kind, ie.ResponseMessage())
	}
}
