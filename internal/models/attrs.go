package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// ErrSerialization сигнализирует о некорректном jsonb-атрибуте.
var ErrSerialization = errors.New("ошибка сериализации jsonb-полей")

// Education — запись об образовании в jsonb-колонке резюме.
type Education struct {
	Degree    string `json:"degree"`
	Direction string `json:"direction"`
	Specialty string `json:"specialty"`
}

// WorkExperience — запись об опыте работы. Даты хранятся текстом,
// как их отдает сервис нормализации.
type WorkExperience struct {
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	CompanyName  string   `json:"company_name"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
}

// Контракт jsonb-атрибутов: nil-срез пишется как NULL («неизвестно»),
// пустой срез — как [] («известно, что нет»). Чтение симметрично.

func MarshalStrings(v []string) (datatypes.JSON, error) {
	return marshalAttr(v == nil, v)
}

func UnmarshalStrings(j datatypes.JSON) ([]string, error) {
	var v []string
	if err := unmarshalAttr(j, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func MarshalEducation(v []Education) (datatypes.JSON, error) {
	return marshalAttr(v == nil, v)
}

func UnmarshalEducation(j datatypes.JSON) ([]Education, error) {
	var v []Education
	if err := unmarshalAttr(j, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func MarshalExperience(v []WorkExperience) (datatypes.JSON, error) {
	return marshalAttr(v == nil, v)
}

func UnmarshalExperience(j datatypes.JSON) ([]WorkExperience, error) {
	var v []WorkExperience
	if err := unmarshalAttr(j, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func marshalAttr(isNil bool, v any) (datatypes.JSON, error) {
	if isNil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return datatypes.JSON(b), nil
}

func unmarshalAttr(j datatypes.JSON, dst any) error {
	if len(j) == 0 || string(j) == "null" {
		return nil
	}
	if err := json.Unmarshal(j, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}
