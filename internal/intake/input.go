package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"patient-intake-server/internal/models"
	"patient-intake-server/internal/utils"
)

// LooseString accepts any JSON scalar and keeps its text form, the way a
// form-encoded value would arrive. true becomes "1"; false and null become "".
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = LooseString(t)
	case bool:
		if t {
			*s = "1"
		} else {
			*s = ""
		}
	case json.Number:
		*s = LooseString(canonicalNumber(t))
	default:
		return fmt.Errorf("expected a text value, got %s", data)
	}
	return nil
}

// canonicalNumber renders 0.0 as "0" so the emptiness check treats every
// zero literal alike.
func canonicalNumber(n json.Number) string {
	if _, err := n.Int64(); err == nil {
		return n.String()
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SymptomInput is one symptom entry. On the wire it is either a bare name
// ("Fever") or a pair (["Cough", "Severe"]); Severity is empty for the
// bare form. Names are stored as given, empty ones included.
type SymptomInput struct {
	Name     LooseString
	Severity LooseString
}

func (s *SymptomInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []LooseString
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) == 0 || len(pair) > 2 {
			return fmt.Errorf("symptom pair must hold a name and an optional severity, got %d values", len(pair))
		}
		s.Name = pair[0]
		s.Severity = ""
		if len(pair) == 2 {
			s.Severity = pair[1]
		}
		return nil
	}

	var name LooseString
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	s.Name = name
	s.Severity = ""
	return nil
}

// SeverityOrDefault returns the recorded severity, or Mild when the entry
// did not carry one.
func (s SymptomInput) SeverityOrDefault() string {
	if utils.Filled(string(s.Severity)) {
		return string(s.Severity)
	}
	return models.DefaultSeverity
}

// SymptomList is the symptoms field. Anything other than a JSON array is
// read as "no symptoms".
type SymptomList []SymptomInput

func (l *SymptomList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*l = nil
		return nil
	}
	var items []SymptomInput
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// PatientInput is the intake document posted by the admission form.
type PatientInput struct {
	Name          LooseString `json:"name" validate:"filled"`
	BirthDate     LooseString `json:"birth_date" validate:"filled"`
	AdmissionDate LooseString `json:"admission_date" validate:"filled"`
	Status        LooseString `json:"status"`
	Notes         LooseString `json:"notes"`
	DiseaseName   LooseString `json:"disease_name" validate:"filled"`
	Symptoms      SymptomList `json:"symptoms"`

	fields []string
}

// Decode parses a request body. The body must be a JSON object.
func Decode(body []byte) (*PatientInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, NewError(KindInvalidInput, MsgInvalidJSON, err)
	}
	if fields == nil {
		return nil, NewError(KindInvalidInput, MsgInvalidJSON, nil)
	}

	var in PatientInput
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, NewError(KindInvalidInput, MsgInvalidJSON, err)
	}

	in.fields = make([]string, 0, len(fields))
	for name := range fields {
		in.fields = append(in.fields, name)
	}
	sort.Strings(in.fields)

	return &in, nil
}

// Fields lists the top-level keys present in the decoded document.
func (in *PatientInput) Fields() []string {
	return in.fields
}

// Validate checks that every required field is filled.
func (in *PatientInput) Validate() error {
	err := utils.Validate(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		err = errors.New(utils.FormatValidationError(verrs))
	}
	return NewError(KindInvalidInput, MsgMissingFields, err)
}

// Admission is a validated intake ready to be written: dates parsed and
// defaults applied.
type Admission struct {
	Name          string
	BirthDate     time.Time
	AdmissionDate time.Time
	Status        string
	Notes         string
	DiseaseName   string
	Symptoms      []SymptomInput
}

// Normalize parses the dates and applies the status and notes defaults.
// Call Validate first.
func (in *PatientInput) Normalize() (*Admission, error) {
	birthDate, err := ParseDate("birth_date", string(in.BirthDate))
	if err != nil {
		return nil, err
	}
	admissionDate, err := ParseDate("admission_date", string(in.AdmissionDate))
	if err != nil {
		return nil, err
	}

	status := string(in.Status)
	if !utils.Filled(status) {
		status = models.DefaultStatus
	}
	notes := string(in.Notes)
	if !utils.Filled(notes) {
		notes = ""
	}

	return &Admission{
		Name:          string(in.Name),
		BirthDate:     birthDate,
		AdmissionDate: admissionDate,
		Status:        status,
		Notes:         notes,
		DiseaseName:   string(in.DiseaseName),
		Symptoms:      in.Symptoms,
	}, nil
}
