package models

import (
	"errors"
	"reflect"
	"testing"

	"gorm.io/datatypes"
)

func TestStringsRoundTrip(t *testing.T) {
	j, err := MarshalStrings([]string{"Go", "PostgreSQL"})
	if err != nil {
		t.Fatalf("MarshalStrings: %v", err)
	}
	got, err := UnmarshalStrings(j)
	if err != nil {
		t.Fatalf("UnmarshalStrings: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Go", "PostgreSQL"}) {
		t.Errorf("получено %v", got)
	}
}

func TestStringsNilVsEmpty(t *testing.T) {
	j, err := MarshalStrings(nil)
	if err != nil {
		t.Fatalf("MarshalStrings(nil): %v", err)
	}
	if j != nil {
		t.Errorf("nil-срез должен давать NULL, получено %s", j)
	}

	j, err = MarshalStrings([]string{})
	if err != nil {
		t.Fatalf("MarshalStrings([]): %v", err)
	}
	if string(j) != "[]" {
		t.Errorf("пустой срез должен давать [], получено %s", j)
	}

	got, err := UnmarshalStrings(nil)
	if err != nil {
		t.Fatalf("UnmarshalStrings(nil): %v", err)
	}
	if got != nil {
		t.Errorf("из NULL должен читаться nil, получено %v", got)
	}

	got, err = UnmarshalStrings(datatypes.JSON("[]"))
	if err != nil {
		t.Fatalf("UnmarshalStrings([]): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("из [] должен читаться пустой срез, получено %v", got)
	}
}

func TestExperienceRoundTrip(t *testing.T) {
	exp := []WorkExperience{{
		StartDate:    "2021-03",
		EndDate:      "2024-01",
		CompanyName:  "Рога и копыта",
		Achievements: []string{"ускорил выдачу в 3 раза"},
		Technologies: []string{"Go", "Redis"},
	}}
	j, err := MarshalExperience(exp)
	if err != nil {
		t.Fatalf("MarshalExperience: %v", err)
	}
	got, err := UnmarshalExperience(j)
	if err != nil {
		t.Fatalf("UnmarshalExperience: %v", err)
	}
	if !reflect.DeepEqual(got, exp) {
		t.Errorf("получено %+v", got)
	}
}

func TestEducationRoundTrip(t *testing.T) {
	edu := []Education{{Degree: "Бакалавр", Direction: "ИВТ", Specialty: "Программная инженерия"}}
	j, err := MarshalEducation(edu)
	if err != nil {
		t.Fatalf("MarshalEducation: %v", err)
	}
	got, err := UnmarshalEducation(j)
	if err != nil {
		t.Fatalf("UnmarshalEducation: %v", err)
	}
	if !reflect.DeepEqual(got, edu) {
		t.Errorf("получено %+v", got)
	}
}

func TestUnmarshalBrokenPayload(t *testing.T) {
	_, err := UnmarshalEducation(datatypes.JSON(`{"not":"an array"`))
	if !errors.Is(err, ErrSerialization) {
		t.Errorf("ожидалась ErrSerialization, получено %v", err)
	}
}
