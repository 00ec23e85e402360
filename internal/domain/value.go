package domain

import (
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindNumber
	KindTime
)

// Value é uma célula tipada da tabela. Texto é convertido sob demanda.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
	Time time.Time
}

func NullValue() Value {
	return Value{Kind: KindNull}
}

func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

func NumberValue(number float64) Value {
	return Value{Kind: KindNumber, Num: number}
}

func TimeValue(date time.Time) Value {
	return Value{Kind: KindTime, Time: date}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull || (v.Kind == KindText && v.Text == "")
}

// AsNumber retorna o valor numérico, convertendo texto quando possível
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		return utils.ParseNumber(v.Text)
	default:
		return 0, false
	}
}

// AsTime retorna a data, convertendo texto quando possível
func (v Value) AsTime() (time.Time, bool) {
	switch v.Kind {
	case KindTime:
		return v.Time, true
	case KindText:
		return utils.ParseDateFlexible(v.Text)
	default:
		return time.Time{}, false
	}
}

// Key identifica o valor para agrupamento e contagem de distintos
func (v Value) Key() string {
	switch v.Kind {
	case KindText:
		return "s:" + v.Text
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindTime:
		return "t:" + v.Time.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindTime:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format(time.DateOnly)
		}
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindTime:
		return json.Marshal(v.Time)
	case KindNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON lê números como número e strings como texto; datas voltam como texto
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch typed := raw.(type) {
	case nil:
		*v = NullValue()
	case float64:
		*v = NumberValue(typed)
	case string:
		*v = TextValue(typed)
	case bool:
		*v = TextValue(strconv.FormatBool(typed))
	default:
		return fmt.Errorf("unsupported JSON value %s", string(data))
	}
	return nil
}
