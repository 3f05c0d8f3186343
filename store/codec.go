package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
)

// EncodeComplex encodes z as a JSON array of the exact decimal strings of its
// real and imaginary parts.
func EncodeComplex(z arith.Complex) string {
	re, im := z.Parts()
	b, _ := json.Marshal([2]string{re, im})
	return string(b)
}

// DecodeComplex decodes a value encoded by EncodeComplex.
func DecodeComplex(s string) (arith.Complex, error) {
	var parts []string
	if err := json.Unmarshal([]byte(s), &parts); err != nil {
		return arith.Complex{}, fmt.Errorf("decoding complex: %w", err)
	}
	return complexParts(parts)
}

func complexParts(parts []string) (arith.Complex, error) {
	if len(parts) != 2 {
		return arith.Complex{}, fmt.Errorf("decoding complex: want 2 parts, have %d", len(parts))
	}
	z, err := arith.Parse(parts[0], parts[1])
	if err != nil {
		return arith.Complex{}, fmt.Errorf("decoding complex: %w", err)
	}
	return z, nil
}

// EncodeExpression encodes e as a JSON array of the display strings of its
// units.
func EncodeExpression(e calculator.Expression) string {
	b, _ := json.Marshal(e.Strings())
	return string(b)
}

// DecodeExpression decodes a value encoded by EncodeExpression.
func DecodeExpression(s string) (calculator.Expression, error) {
	var disp []string
	if err := json.Unmarshal([]byte(s), &disp); err != nil {
		return calculator.Expression{}, fmt.Errorf("decoding expression: %w", err)
	}
	e, err := calculator.ParseStrings(disp)
	if err != nil {
		return calculator.Expression{}, fmt.Errorf("decoding expression: %w", err)
	}
	return e, nil
}

type paramsJSON struct {
	AngleUnit   int                        `json:"angleUnit"`
	VariableMap map[string]json.RawMessage `json:"variableMap"`
}

// EncodeParams encodes p as a JSON object holding the ordinal of its angle
// unit and a map from variable display strings to encoded values.
func EncodeParams(p *calculator.Params) string {
	v := paramsJSON{
		AngleUnit:   int(p.AngleUnit()),
		VariableMap: make(map[string]json.RawMessage),
	}
	for _, u := range p.Variables() {
		x, _ := p.Lookup(u)
		v.VariableMap[u.String()] = json.RawMessage(EncodeComplex(x))
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// DecodeParams decodes a value encoded by EncodeParams. Entries that do not
// name a variable or do not hold a valid value are dropped, as is an unknown
// angle unit; dropped is the number of such entries. If s is not a params
// object at all, p is the default params and err describes the problem. p is
// never nil.
func DecodeParams(s string) (p *calculator.Params, dropped int, err error) {
	var v paramsJSON
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		p, _ := calculator.NewParams()
		return p, 0, fmt.Errorf("decoding params: %w", err)
	}
	var opts []calculator.ParamsOption
	switch v.AngleUnit {
	case int(arith.Rad), int(arith.Deg):
		opts = append(opts, calculator.Angle(arith.AngleUnit(v.AngleUnit)))
	default:
		dropped++
	}
	for _, k := range slices.Sorted(maps.Keys(v.VariableMap)) {
		raw := v.VariableMap[k]
		if string(raw) == "null" {
			continue
		}
		u, ok := calculator.Lookup(k)
		if !ok || !u.IsVariable() {
			dropped++
			continue
		}
		var parts []string
		if err := json.Unmarshal(raw, &parts); err != nil {
			dropped++
			continue
		}
		x, err := complexParts(parts)
		if err != nil {
			dropped++
			continue
		}
		if x, err = arith.Finish(x, nil); err != nil {
			dropped++
			continue
		}
		opts = append(opts, calculator.SetVar(u, x))
	}
	p, err = calculator.NewParams(opts...)
	if err != nil {
		// Every option was checked above.
		panic("store: " + err.Error())
	}
	return p, dropped, nil
}
