package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category Группа цифр, на которую можно поставить
type Category string

const (
	CategorySmall  Category = "small"
	CategoryMiddle Category = "middle"
	CategoryBig    Category = "big"
	CategoryEven   Category = "even"
	CategoryOdd    Category = "odd"
)

// Categories все категории в порядке отображения
var Categories = []Category{CategorySmall, CategoryMiddle, CategoryBig, CategoryEven, CategoryOdd}

const (
	MinDigit = 0
	MaxDigit = 9
)

var (
	ErrInvalidDigit    = errors.New("digit must be in range 0..9")
	ErrInvalidCategory = errors.New("unknown pick category")
)

// Contains проверяет, входит ли цифра в категорию.
// small/middle/big и even/odd разбивают 0..9 без пересечений
func (c Category) Contains(digit int) bool {
	if digit < MinDigit || digit > MaxDigit {
		return false
	}
	switch c {
	case CategorySmall:
		return digit <= 4
	case CategoryMiddle:
		return digit == 5
	case CategoryBig:
		return digit >= 6
	case CategoryEven:
		return digit%2 == 0
	case CategoryOdd:
		return digit%2 == 1
	}
	return false
}

func (c Category) valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type pickKind uint8

const (
	pickNone pickKind = iota
	pickDigit
	pickCategory
)

// Pick Выбор игрока: конкретная цифра, категория или ничего.
// Нулевое значение - отсутствие выбора
type Pick struct {
	kind     pickKind
	digit    int
	category Category
}

// NoPick отсутствие выбора
func NoPick() Pick {
	return Pick{}
}

// DigitPick ставка на конкретную цифру
func DigitPick(digit int) (Pick, error) {
	if digit < MinDigit || digit > MaxDigit {
		return Pick{}, ErrInvalidDigit
	}
	return Pick{kind: pickDigit, digit: digit}, nil
}

// CategoryPick ставка на группу цифр
func CategoryPick(c Category) (Pick, error) {
	if !c.valid() {
		return Pick{}, ErrInvalidCategory
	}
	return Pick{kind: pickCategory, category: c}, nil
}

// ParsePick разбирает строковое представление: "0".."9", имя категории, "" или "null"
func ParsePick(s string) (Pick, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "null" {
		return NoPick(), nil
	}
	if d, err := strconv.Atoi(s); err == nil {
		return DigitPick(d)
	}
	return CategoryPick(Category(s))
}

func (p Pick) IsNone() bool {
	return p.kind == pickNone
}

// Digit возвращает цифру, если выбор - цифра
func (p Pick) Digit() (int, bool) {
	return p.digit, p.kind == pickDigit
}

// Category возвращает категорию, если выбор - категория
func (p Pick) Category() (Category, bool) {
	return p.category, p.kind == pickCategory
}

// BetType тип ставки для журнала ставок: "digit" или имя категории
func (p Pick) BetType() string {
	switch p.kind {
	case pickDigit:
		return "digit"
	case pickCategory:
		return string(p.category)
	}
	return ""
}

func (p Pick) String() string {
	switch p.kind {
	case pickDigit:
		return strconv.Itoa(p.digit)
	case pickCategory:
		return string(p.category)
	}
	return "none"
}

// MarshalJSON цифра - число, категория - строка, отсутствие выбора - null
func (p Pick) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case pickDigit:
		return json.Marshal(p.digit)
	case pickCategory:
		return json.Marshal(string(p.category))
	}
	return []byte("null"), nil
}

func (p *Pick) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = NoPick()
		return nil
	}

	var digit int
	if err := json.Unmarshal(data, &digit); err == nil {
		parsed, err := DigitPick(digit)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pick must be a digit, a category or null: %w", err)
	}
	parsed, err := ParsePick(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
